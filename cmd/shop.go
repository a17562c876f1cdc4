package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/telemetry"
	"github.com/papapumpkin/greenhouse/internal/tui"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Open the interactive storefront",
	Long: `Open the storefront: pick a category, browse up to six plants, open a
plant's details, and add plants to the cart.

With --fixture and --watch, edits to the fixture file reload the catalog
while the storefront is open. The cart is kept across reloads.`,
	Args: cobra.NoArgs,
	RunE: runShop,
}

func init() {
	shopCmd.Flags().Bool("watch", false, "reload the fixture when it changes on disk")
	shopCmd.Flags().Bool("no-mouse", false, "disable mouse support")
	_ = viper.BindPFlag("catalog.watch", shopCmd.Flags().Lookup("watch"))
	rootCmd.AddCommand(shopCmd)
}

func runShop(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("greenhouse shop requires a TTY (terminal)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noMouse, _ := cmd.Flags().GetBool("no-mouse"); noMouse {
		cfg.UI.Mouse = false
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	src, err := openSource(cfg, sess.Log)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Source:      src,
		Timeout:     cfg.API.Timeout,
		Logger:      sess.Log,
		Telemetry:   sess.Telemetry,
		SourceLabel: src.Label,
		Mouse:       cfg.UI.Mouse,
	}

	if cfg.Catalog.Watch {
		w, err := catalog.NewWatcher(src.Fixture.Path())
		if err != nil {
			return fmt.Errorf("failed to watch fixture: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to watch fixture: %w", err)
		}
		defer w.Stop()
		opts.Changes = w.Changes
		opts.Reload = src.Fixture.Reload
	}

	_ = sess.Telemetry.Record(telemetry.KindSessionStart, map[string]any{
		"source": src.Label,
		"watch":  cfg.Catalog.Watch,
	})
	sess.Log.WithField("session", sess.Telemetry.SessionID()).Info("storefront started")

	runErr := tui.Run(opts)

	_ = sess.Telemetry.Record(telemetry.KindSessionEnd, nil)
	sess.Log.Info("storefront closed")
	return runErr
}
