package settings

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/cli"
	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	StartHour         *int     `help:"Grid start hour (0-23)."`
	EndHour           *int     `help:"Grid end hour (1-24)."`
	Alpha             *float64 `help:"Leisure term weight in the objective."`
	Beta              *float64 `help:"Stress term weight in the objective."`
	Gamma             *float64 `help:"Deadline-pressure multiplier in the stress term."`
	GammaContiguity   *float64 `help:"Contiguity term weight (contextual variant only)."`
	HardTaskThreshold *int     `help:"Difficulty at or above which a task counts as hard."`
	DailyLimitSlots   *int     `help:"Maximum scheduled slots per day (0 disables the limit)."`
	TimeLimitSeconds  *int     `help:"Solver time budget in seconds."`
	Timezone          *string  `help:"IANA timezone name used to build the week's grid."`
	Variant           *string  `help:"Model variant (base|deadline_penalty|contextual)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Start Hour:           %d\n", settings.StartHour)
		fmt.Printf("  End Hour:             %d\n", settings.EndHour)
		fmt.Printf("  Alpha (leisure):      %g\n", settings.Alpha)
		fmt.Printf("  Beta (stress):        %g\n", settings.Beta)
		fmt.Printf("  Gamma (deadline):     %g\n", settings.Gamma)
		fmt.Printf("  Gamma Contiguity:     %g\n", settings.GammaContiguity)
		fmt.Printf("  Hard Task Threshold:  %d\n", settings.HardTaskThreshold)
		if settings.DailyLimitSlots != nil {
			fmt.Printf("  Daily Limit Slots:    %d\n", *settings.DailyLimitSlots)
		} else {
			fmt.Println("  Daily Limit Slots:    (none)")
		}
		fmt.Printf("  Time Limit Seconds:   %d\n", settings.TimeLimitSeconds)
		fmt.Printf("  Timezone:             %s\n", settings.Timezone)
		fmt.Printf("  Variant:              %s\n", settings.Variant)
		return nil
	}

	updated := false

	if c.StartHour != nil {
		settings.StartHour = *c.StartHour
		updated = true
	}
	if c.EndHour != nil {
		settings.EndHour = *c.EndHour
		updated = true
	}
	if c.Alpha != nil {
		settings.Alpha = *c.Alpha
		updated = true
	}
	if c.Beta != nil {
		settings.Beta = *c.Beta
		updated = true
	}
	if c.Gamma != nil {
		settings.Gamma = *c.Gamma
		updated = true
	}
	if c.GammaContiguity != nil {
		settings.GammaContiguity = *c.GammaContiguity
		updated = true
	}
	if c.HardTaskThreshold != nil {
		settings.HardTaskThreshold = *c.HardTaskThreshold
		updated = true
	}
	if c.DailyLimitSlots != nil {
		v := *c.DailyLimitSlots
		if v <= 0 {
			settings.DailyLimitSlots = nil
		} else {
			settings.DailyLimitSlots = &v
		}
		updated = true
	}
	if c.TimeLimitSeconds != nil {
		if *c.TimeLimitSeconds <= 0 {
			return fmt.Errorf("time limit seconds must be greater than zero")
		}
		settings.TimeLimitSeconds = *c.TimeLimitSeconds
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Variant != nil {
		variant := constants.Variant(*c.Variant)
		switch variant {
		case constants.VariantBase, constants.VariantDeadlinePenalty, constants.VariantContextual:
		default:
			return fmt.Errorf("variant must be one of base, deadline_penalty, contextual")
		}
		settings.Variant = variant
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
