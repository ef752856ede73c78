// Package forecast evaluates every active scenario of a configuration.
package forecast

import (
	"context"
	"fmt"

	"github.com/suhas-sunder/allsavingscalc-sub000/internal/config"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/optimizer"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/calculator"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/optimization"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Forecast holds all information related to a specific scenario.
type Forecast struct {
	Name       string                `json:"name"`
	Calculator string                `json:"calculator"`
	Input      calculator.Input      `json:"input"`
	Result     *calculator.Result    `json:"result"`
	Goal       *optimization.Summary `json:"goal,omitempty"`
}

// GetForecast processes the Forecasts for all active Scenarios. Scenarios
// run concurrently; results keep configuration order and the first failure
// cancels the remaining work.
func GetForecast(ctx context.Context, logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var scenarios []config.Scenario
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}
		scenarios = append(scenarios, scenario)
	}

	results := make([]Forecast, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	for i, scenario := range scenarios {
		i, scenario := i, scenario
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fc, err := Evaluate(logger, scenario)
			if err != nil {
				return err
			}
			results[i] = fc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Evaluate runs one scenario, solving its goal first when one is set.
func Evaluate(logger *zap.Logger, scenario config.Scenario) (Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	in, err := scenario.Input()
	if err != nil {
		return Forecast{}, err
	}

	fc := Forecast{Name: scenario.Name, Calculator: in.Calculator()}
	if scenario.Goal != nil {
		summary, adjusted, err := optimizer.NewRunner(logger).Run(scenario.Name, in, *scenario.Goal)
		if err != nil {
			return Forecast{}, fmt.Errorf("scenario %s: goal seek failed: %w", scenario.Name, err)
		}
		fc.Goal = &summary
		in = adjusted
	}

	result, err := calculator.Run(logger, in)
	if err != nil {
		return Forecast{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	fc.Input = in
	fc.Result = result

	logger.Debug("scenario evaluated",
		zap.String("op", "forecast.Evaluate"),
		zap.String("scenario", scenario.Name),
		zap.String("calculator", fc.Calculator),
		zap.Float64("finalBalance", result.Summary.FinalBalance),
	)
	return fc, nil
}
