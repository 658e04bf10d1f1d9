package main

import (
	"fmt"
	"log/slog"

	"github.com/bindcurve/stone"
	"github.com/urfave/cli/v2"
)

var (
	plotOutFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Output image path (extension selects the format)",
		Value: "stonefit.png",
	}

	fitCmd = &cli.Command{
		Name:   "fit",
		Usage:  "Fit {scale, Kd, Kx} to the titration by nonlinear least squares",
		Action: runFit,
	}

	crossvalCmd = &cli.Command{
		Name:   "crossval",
		Usage:  "Leave-one-out cross-validation of the fitted model",
		Action: runCrossval,
	}

	bootstrapCmd = &cli.Command{
		Name:   "bootstrap",
		Usage:  "Bootstrap prediction intervals for the fitted curves",
		Action: runBootstrap,
	}

	sensitivityCmd = &cli.Command{
		Name:   "sensitivity",
		Usage:  "One-at-a-time ±10x parameter sweep around the fitted optimum",
		Action: runSensitivity,
	}

	plotCmd = &cli.Command{
		Name:   "plot",
		Usage:  "Render the titration and fitted curves as a semilog scatter",
		Flags:  []cli.Flag{plotOutFlag},
		Action: runPlot,
	}
)

func fitted(c *cli.Context) (stone.Config, stone.Model, stone.Dataset, stone.FitResult, error) {
	cfg, err := getConfig(c)
	if err != nil {
		return stone.Config{}, stone.Model{}, stone.Dataset{}, stone.FitResult{}, err
	}

	m := cfg.Model()
	data := stone.TitrationData()

	res, err := m.Fit(data, cfg.Fit)
	if err != nil {
		return stone.Config{}, stone.Model{}, stone.Dataset{}, stone.FitResult{},
			fmt.Errorf("fitting model: %w", err)
	}

	slog.Info("model fitted",
		"scale", res.Params.Scale,
		"kd", res.Params.Kd,
		"kx", res.Params.Kx,
		"sse", res.SSE,
		"r2", res.RSquared,
		"evals", res.FuncEvals,
	)
	return cfg, m, data, res, nil
}

func runFit(c *cli.Context) error {
	_, _, _, _, err := fitted(c)
	return err
}

func runCrossval(c *cli.Context) error {
	cfg, m, data, _, err := fitted(c)
	if err != nil {
		return err
	}

	loo, err := m.LeaveOneOut(data, cfg.Fit)
	if err != nil {
		return fmt.Errorf("cross-validation: %w", err)
	}

	for i, pred := range loo.Predicted {
		slog.Debug("held-out prediction",
			"point", i,
			"conc", data.Conc[i],
			"valency", data.Valency[i],
			"observed", data.Response[i],
			"predicted", pred,
		)
	}
	slog.Info("leave-one-out complete", "sse", loo.SSE, "rmse", loo.RMSE)
	return nil
}

func runBootstrap(c *cli.Context) error {
	cfg, m, data, fit, err := fitted(c)
	if err != nil {
		return err
	}

	// Start replicate refits at the full-data optimum.
	refitCfg := cfg.Fit
	refitCfg.Start = fit.Params

	boot, err := m.Bootstrap(data, refitCfg, cfg.Bootstrap)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	slog.Info("bootstrap complete",
		"replicates", cfg.Bootstrap.Replicates,
		"converged", len(boot.Fits),
		"failed", boot.Failed,
		"confidence", cfg.Bootstrap.Confidence,
	)
	for _, band := range boot.Bands {
		mid := len(band.Conc) / 2
		slog.Info("prediction band",
			"valency", band.Valency,
			"conc", band.Conc[mid],
			"lower", band.Lower[mid],
			"upper", band.Upper[mid],
		)
	}
	return nil
}

func runSensitivity(c *cli.Context) error {
	cfg, m, data, fit, err := fitted(c)
	if err != nil {
		return err
	}

	sens, err := m.Sensitivity(data, fit.Params, cfg.Sensitivity.GridSize)
	if err != nil {
		return fmt.Errorf("sensitivity sweep: %w", err)
	}

	for _, sweep := range sens.Sweeps {
		slog.Info("parameter sweep", "param", sweep.Name, "sse_spread", sweep.Spread)
		for _, pt := range sweep.Points {
			slog.Debug("sweep point",
				"param", sweep.Name,
				"factor", pt.Factor,
				"value", pt.Value,
				"sse", pt.SSE,
			)
		}
	}
	slog.Info("sensitivity complete",
		"baseline_sse", sens.Baseline,
		"most_sensitive", sens.MostSensitive,
		"least_sensitive", sens.LeastSensitive,
	)
	return nil
}

func runPlot(c *cli.Context) error {
	_, m, data, fit, err := fitted(c)
	if err != nil {
		return err
	}

	out := c.String(plotOutFlag.Name)
	if err := m.SavePlot(data, fit.Params, out); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}
	slog.Info("plot written", "path", out)
	return nil
}
