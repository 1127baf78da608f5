package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/reminder"
	"github.com/spf13/cobra"
)

var leadChoices = []int{5, 10, 15, 20, 30, 45, 60}

// setupAnswers holds what the setup form collects.
type setupAnswers struct {
	District      string
	Notifications bool
	Lead          int
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Choose district and reminders interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive() {
				return errInteractive
			}
			state := persistentState(cmd, app.Options{})
			cfg := state.Config()

			ans := setupAnswers{
				District:      state.District().Name,
				Notifications: cfg.Notifications.Enabled,
				Lead:          cfg.Notifications.ReminderMinutes,
			}
			if err := setupForm(&ans).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), "Bekor qilindi.")
					return nil
				}
				return err
			}

			return applySetup(cmd.Context(), cmd, state, ans)
		},
	}
}

func setupForm(ans *setupAnswers) *huh.Form {
	leads := make([]huh.Option[int], 0, len(leadChoices))
	for _, n := range leadChoices {
		leads = append(leads, huh.NewOption(strconv.Itoa(n)+" daqiqa", n))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Hududni tanlang").
				Options(huh.NewOptions(calendar.DistrictNames()...)...).
				Value(&ans.District),
			huh.NewConfirm().
				Title("Eslatmalarni yoqish").
				Description("Saharlik va iftorlik oldidan bildirishnoma yuboriladi.").
				Affirmative("Ha").
				Negative("Yo'q").
				Value(&ans.Notifications),
			huh.NewSelect[int]().
				Title("Qancha oldin eslatilsin?").
				Options(leads...).
				Value(&ans.Lead),
		),
	).WithTheme(huh.ThemeCharm())
}

// applySetup stores the answers. Confirming reminders in the form counts as
// granting permission.
func applySetup(ctx context.Context, cmd *cobra.Command, state *app.State, ans setupAnswers) error {
	if err := state.SelectDistrict(ans.District); err != nil {
		return err
	}
	if config.ValidLead(ans.Lead) {
		if err := state.SetLeadMinutes(ans.Lead); err != nil {
			return err
		}
	}
	granted := reminder.AskerFunc(func(context.Context) (bool, error) { return true, nil })
	if _, err := state.SetNotificationsEnabled(ctx, ans.Notifications, granted); err != nil {
		return err
	}
	if err := state.MarkStarted(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Hudud: %s\n", state.District().Name)
	if ans.Notifications {
		fmt.Fprintf(out, "Eslatmalar: %d daqiqa oldin\n", state.Config().Notifications.ReminderMinutes)
	} else {
		fmt.Fprintln(out, "Eslatmalar: o'chirilgan")
	}
	return nil
}
