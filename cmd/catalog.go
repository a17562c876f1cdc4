package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/config"
	"github.com/papapumpkin/greenhouse/internal/ui"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the plant catalog without the storefront",
	Long: `Query the same catalog the storefront uses and print the result.
Use --json for machine-readable output.`,
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List plant categories",
	Args:  cobra.NoArgs,
	RunE:  runCatalogCategories,
}

var catalogPlantsCmd = &cobra.Command{
	Use:   "plants <category-id>",
	Short: "List the plants shown for a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogPlants,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <plant-id>",
	Short: "Show one plant's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func init() {
	catalogCmd.PersistentFlags().Bool("json", false, "print JSON")
	catalogCmd.AddCommand(catalogCategoriesCmd, catalogPlantsCmd, catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

// plantJSON is the --json shape of a plant. Price is in dollars.
type plantJSON struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Image            string  `json:"image"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	ScientificName   string  `json:"scientific_name,omitempty"`
	CareInstructions string  `json:"care,omitempty"`
}

type categoryJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func summaryJSON(p catalog.PlantSummary) plantJSON {
	return plantJSON{
		ID:          p.ID,
		Name:        p.Name,
		Image:       p.ImageURL,
		Description: p.ShortDescription,
		Category:    p.CategoryLabel(),
		Price:       p.Price.Float(),
	}
}

func detailJSON(d catalog.PlantDetail) plantJSON {
	d = d.Labeled()
	j := summaryJSON(d.PlantSummary)
	j.Category = d.Category
	j.Description = d.FullDescription
	j.ScientificName = d.ScientificName
	j.CareInstructions = d.CareInstructions
	return j
}

// catalogRun holds what every catalog subcommand needs.
type catalogRun struct {
	src     catalogSource
	printer *ui.Printer
	json    bool
	timeout time.Duration
	close   func() error
}

func newCatalogRun(cmd *cobra.Command) (*catalogRun, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newCatalogRunWith(cmd, cfg)
}

func newCatalogRunWith(cmd *cobra.Command, cfg config.Config) (*catalogRun, error) {
	sess, err := openSession(cfg)
	if err != nil {
		return nil, err
	}
	src, err := openSource(cfg, sess.Log)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	return &catalogRun{
		src:     src,
		printer: ui.New(cmd.OutOrStdout(), isTerminal(os.Stdout) && cmd.OutOrStdout() == os.Stdout),
		json:    asJSON,
		timeout: cfg.API.Timeout,
		close:   sess.Close,
	}, nil
}

func (r *catalogRun) fetchContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func runCatalogCategories(cmd *cobra.Command, _ []string) error {
	r, err := newCatalogRun(cmd)
	if err != nil {
		return err
	}
	defer r.close()
	return r.categories()
}

func (r *catalogRun) categories() error {
	ctx, cancel := r.fetchContext()
	defer cancel()
	cats, err := r.src.Categories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	if r.json {
		out := make([]categoryJSON, 0, len(cats))
		for _, c := range cats {
			out = append(out, categoryJSON{ID: c.ID, Name: c.Name})
		}
		return r.printer.JSON(out)
	}
	r.printer.Categories(cats)
	return nil
}

func runCatalogPlants(cmd *cobra.Command, args []string) error {
	r, err := newCatalogRun(cmd)
	if err != nil {
		return err
	}
	defer r.close()
	return r.plants(args[0])
}

func (r *catalogRun) plants(categoryID string) error {
	ctx, cancel := r.fetchContext()
	defer cancel()
	plants, err := r.src.PlantsByCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("plants for category %s: %w", categoryID, err)
	}
	if r.json {
		out := make([]plantJSON, 0, len(plants))
		for _, p := range plants {
			out = append(out, summaryJSON(p))
		}
		return r.printer.JSON(out)
	}
	r.printer.Plants(categoryID, plants)
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	r, err := newCatalogRun(cmd)
	if err != nil {
		return err
	}
	defer r.close()
	return r.show(args[0])
}

func (r *catalogRun) show(plantID string) error {
	ctx, cancel := r.fetchContext()
	defer cancel()
	d, ok, err := r.src.PlantDetail(ctx, plantID)
	if err != nil {
		return fmt.Errorf("plant %s: %w", plantID, err)
	}
	if !ok {
		return fmt.Errorf("plant %s: not found", plantID)
	}
	if r.json {
		return r.printer.JSON(detailJSON(d))
	}
	r.printer.PlantDetail(d)
	return nil
}
