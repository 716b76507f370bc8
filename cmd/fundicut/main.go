// FundiCut computes piece lists for parametric product styles (windows,
// doors, gates), packs the pieces onto stock bars and glass sheets,
// prices the job and renders the cutting sheets a fundi works from.
//
// Build:
//
//	go build -o fundicut ./cmd/fundicut
//
// Usage:
//
//	fundicut import orders.csv --name "Mrs Wanjiku House"
//	fundicut quote mrs-wanjiku-house.json -o out/ --format pdf,xlsx,labels
//	fundicut cutsheet mrs-wanjiku-house.json -m SHS-25
//	fundicut styles list
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wajenzi/fundicut/internal/config"
	"github.com/wajenzi/fundicut/internal/cutsheet"
	"github.com/wajenzi/fundicut/internal/export"
	"github.com/wajenzi/fundicut/internal/gcode"
	"github.com/wajenzi/fundicut/internal/importer"
	"github.com/wajenzi/fundicut/internal/model"
	"github.com/wajenzi/fundicut/internal/pricing"
	"github.com/wajenzi/fundicut/internal/project"
	"github.com/wajenzi/fundicut/internal/style"
)

// Set at build time via -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

// appContext carries the state every subcommand needs: the workshop
// configuration, the resolved style catalog and the logger.
type appContext struct {
	logger      *zap.Logger
	workshop    config.Workshop
	registry    *style.Catalog
	catalogPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &appContext{}
	var (
		configPath  string
		catalogPath string
		verbose     bool
	)

	root := &cobra.Command{
		Use:   "fundicut",
		Short: "Workshop quoting and cutting calculator",
		Long: `FundiCut computes the piece list for parametric product styles,
packs the pieces onto stock bars and glass sheets, prices the job and
renders the cutting sheets a fundi works from.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			app.logger = logger

			workshop, err := config.Load(configPath)
			if err != nil {
				return err
			}
			app.workshop = workshop

			// Flag wins over config, config over the default location.
			path := catalogPath
			if path == "" {
				path = workshop.ResolveCatalogPath(style.DefaultCatalogPath())
			}
			registry, err := style.LoadCatalog(path)
			if err != nil {
				return err
			}
			app.registry = registry
			app.catalogPath = path

			app.logger.Debug("configuration loaded",
				zap.Int("default_bar_mm", workshop.DefaultBarLengthMM),
				zap.Int("sheet_materials", len(workshop.Sheets)),
				zap.Int("custom_styles", len(registry.Custom)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "workshop config file (default: ./workshop.yaml, then ~/.fundicut/workshop.yaml)")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "style catalog file (default: ~/.fundicut/styles.json)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newImportCmd(app))
	root.AddCommand(newQuoteCmd(app))
	root.AddCommand(newCutsheetCmd(app))
	root.AddCommand(newOffcutsCmd(app))
	root.AddCommand(newStockCmd(app))
	root.AddCommand(newStylesCmd(app))
	root.AddCommand(newVersionCmd())
	return root
}

// newLogger builds a console logger on stderr so stdout stays clean for
// command output.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// ─── import ───

func newImportCmd(app *appContext) *cobra.Command {
	var (
		out  string
		name string
	)

	cmd := &cobra.Command{
		Use:   "import <items.csv|items.xlsx>",
		Short: "Import an item list into a new project file",
		Long: `Import reads a CSV or Excel item list and writes a project file.

The header row must name Style, Label, Width, Height and Quantity
columns (delimiter and column order are detected). Any extra columns
become custom dimensions, e.g. a "blades" column feeds styles whose
formulas reference blades.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]

			var result importer.ImportResult
			switch strings.ToLower(filepath.Ext(src)) {
			case ".xlsx", ".xlsm":
				result = importer.ImportExcel(src)
			default:
				result = importer.ImportCSV(src)
			}
			for _, w := range result.Warnings {
				app.logger.Warn(w)
			}
			for _, e := range result.Errors {
				app.logger.Error(e)
			}
			if len(result.Items) == 0 {
				return fmt.Errorf("no items imported from %s", src)
			}

			for _, item := range result.Items {
				if _, ok := app.registry.Lookup(item.StyleID); !ok {
					return fmt.Errorf("item %d references unknown style %q", item.ItemID, item.StyleID)
				}
			}

			p := model.NewProject()
			if name != "" {
				p.Name = name
			} else {
				p.Name = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
			}
			p.Items = result.Items
			p.Stock = app.workshop.StockConfig()
			p.Method = app.workshop.Method()
			p.Rates = app.workshop.Rates()

			if out == "" {
				out = filepath.Join(project.DefaultProjectsDir(), fileStem(p.Name)+".json")
			}
			if err := project.SaveProject(out, p); err != nil {
				return err
			}
			app.logger.Info("project created",
				zap.String("path", out),
				zap.Int("items", len(p.Items)),
				zap.Int("rejected_rows", len(result.Errors)))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d item(s) into %s\n", len(p.Items), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "project file to write (default: ~/.fundicut/projects/<name>.json)")
	cmd.Flags().StringVar(&name, "name", "", "project name (default: source file name)")
	return cmd
}

// ─── quote ───

func newQuoteCmd(app *appContext) *cobra.Command {
	var (
		out      string
		formats  []string
		optimize bool
		dialect  string
	)

	cmd := &cobra.Command{
		Use:   "quote <project.json>",
		Short: "Compute the full quote for a project",
		Long: `Quote expands every item into its piece list, packs the pieces onto
stock bars and glass sheets, prices the job and prints a summary.
With --out the computed artifacts are written alongside: the quote PDF,
the Excel workbook, QR piece labels, DXF sheet layouts and the project
file with results embedded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}
			applyWorkshopDefaults(&p, app.workshop)

			quote := project.Quote
			if optimize {
				quote = project.QuoteOptimized
			}
			result, err := quote(p, app.registry)
			if err != nil {
				return err
			}
			p.Result = result

			app.logger.Info("quote computed",
				zap.String("project", p.Name),
				zap.Int("items", len(p.Items)),
				zap.Int("bars", result.TotalBars()),
				zap.Int("sheets", result.TotalSheets()),
				zap.Int("skipped", result.SkippedPieces()))

			printQuoteSummary(cmd, p)

			if out == "" {
				return nil
			}
			return writeArtifacts(app.logger, out, formats, dialect, p)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "directory to write artifacts into")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"pdf", "json"}, "artifacts to write: pdf, xlsx, labels, dxf, gcode, json")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "search sheet placement orders for a denser layout (slower)")
	cmd.Flags().StringVar(&dialect, "dialect", "generic", "controller dialect for gcode programs: "+strings.Join(gcode.ProfileNames(), ", "))
	return cmd
}

// applyWorkshopDefaults fills project settings the file left empty from
// the workshop configuration. A project saved by this tool carries its
// own stock and rates; hand-written minimal files may not.
func applyWorkshopDefaults(p *model.Project, w config.Workshop) {
	if p.Stock.DefaultBarLengthMM == 0 {
		p.Stock = w.StockConfig()
	}
	if p.Method == "" {
		p.Method = w.Method()
	}
	if p.Rates.StyleRates == nil && p.Rates.MaterialRates == nil && p.Rates.LaborCost == 0 {
		p.Rates = w.Rates()
	}
}

func printQuoteSummary(cmd *cobra.Command, p model.Project) {
	r := p.Result
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Project: %s (%d items)\n", p.Name, len(p.Items))
	for i := range r.LinearPlans {
		plan := &r.LinearPlans[i]
		fmt.Fprintf(out, "  %-14s %-10s %2d bar(s) of %dmm, %d pieces, %d%% waste\n",
			plan.MaterialID, plan.Shape, plan.BarsUsed(), plan.StockLengthMM,
			plan.TotalPieces, plan.WastePct)
	}
	for i := range r.GlassPlans {
		plan := &r.GlassPlans[i]
		fmt.Fprintf(out, "  %-14s %-10s %2d sheet(s) of %dx%dmm, %d pieces, %d%% waste\n",
			plan.MaterialID, "sheet", plan.TotalSheets, plan.SheetWMM, plan.SheetHMM,
			plan.TotalPieces, plan.WastePct)
		if plan.SkippedCount > 0 {
			fmt.Fprintf(out, "  WARNING: %d %s piece(s) fit on no sheet\n",
				plan.SkippedCount, plan.MaterialID)
		}
	}
	fmt.Fprintf(out, "Charge (%s): %s\n", r.Method, pricing.FormatAmount(r.TotalCharge))
}

func writeArtifacts(logger *zap.Logger, dir string, formats []string, dialect string, p model.Project) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stem := fileStem(p.Name)
	for _, format := range formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "pdf":
			path := filepath.Join(dir, stem+".pdf")
			if err := export.ExportQuotePDF(path, p); err != nil {
				return err
			}
			logger.Info("wrote quote PDF", zap.String("path", path))
		case "labels":
			path := filepath.Join(dir, stem+"-labels.pdf")
			if err := export.ExportLabels(path, *p.Result); err != nil {
				return err
			}
			logger.Info("wrote piece labels", zap.String("path", path))
		case "xlsx":
			path := filepath.Join(dir, stem+".xlsx")
			if err := export.ExportExcel(path, p); err != nil {
				return err
			}
			logger.Info("wrote quote workbook", zap.String("path", path))
		case "dxf":
			if len(p.Result.GlassPlans) == 0 {
				logger.Warn("project has no sheet layouts, skipping DXF export")
				continue
			}
			for i := range p.Result.GlassPlans {
				plan := p.Result.GlassPlans[i]
				path := filepath.Join(dir, fmt.Sprintf("%s-%s.dxf", stem, fileStem(plan.MaterialID)))
				if err := export.ExportDXF(path, plan); err != nil {
					return err
				}
				logger.Info("wrote sheet layout DXF", zap.String("path", path))
			}
		case "gcode":
			if len(p.Result.GlassPlans) == 0 {
				logger.Warn("project has no sheet layouts, skipping gcode export")
				continue
			}
			settings := gcode.DefaultSettings()
			settings.Profile = dialect
			gen := gcode.New(settings)
			for i := range p.Result.GlassPlans {
				plan := p.Result.GlassPlans[i]
				for j, program := range gen.GenerateAll(plan) {
					path := filepath.Join(dir, fmt.Sprintf("%s-%s-sheet%d.nc", stem, fileStem(plan.MaterialID), j+1))
					if err := os.WriteFile(path, []byte(program), 0644); err != nil {
						return fmt.Errorf("failed to write gcode program: %w", err)
					}
					logger.Info("wrote cutting program", zap.String("path", path))
				}
			}
		case "json":
			path := filepath.Join(dir, stem+".json")
			if err := project.SaveProject(path, p); err != nil {
				return err
			}
			logger.Info("wrote computed project", zap.String("path", path))
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
	}
	return nil
}

// fileStem turns a project or material name into a safe filename stem.
func fileStem(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteByte('-')
		}
	}
	stem := strings.Trim(b.String(), "-")
	if stem == "" {
		return "quote"
	}
	return stem
}

// ─── cutsheet ───

func newCutsheetCmd(app *appContext) *cobra.Command {
	var material string

	cmd := &cobra.Command{
		Use:   "cutsheet <project.json>",
		Short: "Render fundi cutting sheets as text",
		Long: `Cutsheet prints the bar-by-bar cutting instructions a fundi works
from: which stock bar, which cuts in order, the trim on each cut and
what remains. Use --material to print a single material's sheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}
			applyWorkshopDefaults(&p, app.workshop)

			result, err := project.Quote(p, app.registry)
			if err != nil {
				return err
			}

			sheets := result.FundiSheets
			if material != "" {
				var filtered []model.FundiCuttingSheet
				for _, s := range sheets {
					if s.ProfileID == material {
						filtered = append(filtered, s)
					}
				}
				if len(filtered) == 0 {
					return fmt.Errorf("no cutting sheet for material %q", material)
				}
				sheets = filtered
			}
			if len(sheets) == 0 {
				return fmt.Errorf("project has no linear pieces to cut")
			}

			fmt.Fprintln(cmd.OutOrStdout(), cutsheet.RenderAll(sheets))
			return nil
		},
	}

	cmd.Flags().StringVarP(&material, "material", "m", "", "render only this material's sheet")
	return cmd
}

// ─── offcuts ───

func newOffcutsCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "offcuts <project.json>",
		Short: "List the reusable remnants a project's cutting leaves",
		Long: `Offcuts recomputes the project's cutting plans and lists the stock
worth keeping afterwards: bar tails of 300mm or more and sheet remnants
at least 50mm on each side, largest first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}
			applyWorkshopDefaults(&p, app.workshop)

			result, err := project.Quote(p, app.registry)
			if err != nil {
				return err
			}

			bars, sheets := model.DetectAllOffcuts(result)
			out := cmd.OutOrStdout()
			if len(bars) == 0 && len(sheets) == 0 {
				fmt.Fprintln(out, "No reusable offcuts.")
				return nil
			}
			if len(bars) > 0 {
				fmt.Fprintln(out, "Bar offcuts:")
				for _, o := range bars {
					fmt.Fprintf(out, "  %-14s bar %d: %dmm\n", o.MaterialID, o.BarIndex, o.LengthMM)
				}
			}
			if len(sheets) > 0 {
				fmt.Fprintln(out, "Sheet offcuts:")
				for _, o := range sheets {
					fmt.Fprintf(out, "  %-14s sheet %d: %dx%dmm at %d,%d\n",
						o.MaterialID, o.SheetIndex, o.WMM, o.HMM, o.X, o.Y)
				}
			}
			return nil
		},
	}
}

// ─── stock ───

func newStockCmd(app *appContext) *cobra.Command {
	var invPath string

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Track the workshop's stock on hand",
	}
	cmd.PersistentFlags().StringVar(&invPath, "inventory", "", "inventory file (default: ~/.fundicut/inventory.json)")

	cmd.AddCommand(newStockShowCmd(&invPath))
	cmd.AddCommand(newStockAddBarsCmd(app, &invPath))
	cmd.AddCommand(newStockAddSheetsCmd(app, &invPath))
	cmd.AddCommand(newStockCheckCmd(app, &invPath))
	cmd.AddCommand(newStockConsumeCmd(app, &invPath))
	return cmd
}

func resolveInventoryPath(invPath *string) string {
	if *invPath != "" {
		return *invPath
	}
	return project.DefaultInventoryPath()
}

func newStockShowCmd(invPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stock on hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(resolveInventoryPath(invPath))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(inv.Bars) == 0 && len(inv.Sheets) == 0 {
				fmt.Fprintln(out, "No stock recorded.")
				return nil
			}
			if len(inv.Bars) > 0 {
				fmt.Fprintln(out, "Bars:")
				for _, lot := range inv.Bars {
					fmt.Fprintf(out, "  %-14s %6dmm  x%d\n", lot.MaterialID, lot.LengthMM, lot.Quantity)
				}
			}
			if len(inv.Sheets) > 0 {
				fmt.Fprintln(out, "Sheets:")
				for _, lot := range inv.Sheets {
					fmt.Fprintf(out, "  %-14s %dx%dmm  x%d\n", lot.MaterialID, lot.WMM, lot.HMM, lot.Quantity)
				}
			}
			return nil
		},
	}
}

func newStockAddBarsCmd(app *appContext, invPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add-bars <material> <length-mm> <qty>",
		Short: "Record delivered stock bars",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := strconv.Atoi(args[1])
			if err != nil || length <= 0 {
				return fmt.Errorf("invalid bar length %q", args[1])
			}
			qty, err := strconv.Atoi(args[2])
			if err != nil || qty <= 0 {
				return fmt.Errorf("invalid quantity %q", args[2])
			}

			path := resolveInventoryPath(invPath)
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			inv.AddBars(args[0], length, qty)
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			app.logger.Info("stock added",
				zap.String("material", args[0]),
				zap.Int("length_mm", length),
				zap.Int("qty", qty))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bar(s) of %dmm on hand\n",
				args[0], inv.CountBars(args[0], length), length)
			return nil
		},
	}
}

func newStockAddSheetsCmd(app *appContext, invPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add-sheets <material> <width-mm> <height-mm> <qty>",
		Short: "Record delivered stock sheets",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := strconv.Atoi(args[1])
			if err != nil || w <= 0 {
				return fmt.Errorf("invalid sheet width %q", args[1])
			}
			h, err := strconv.Atoi(args[2])
			if err != nil || h <= 0 {
				return fmt.Errorf("invalid sheet height %q", args[2])
			}
			qty, err := strconv.Atoi(args[3])
			if err != nil || qty <= 0 {
				return fmt.Errorf("invalid quantity %q", args[3])
			}

			path := resolveInventoryPath(invPath)
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			inv.AddSheets(args[0], w, h, qty)
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			app.logger.Info("stock added",
				zap.String("material", args[0]),
				zap.Int("w_mm", w),
				zap.Int("h_mm", h),
				zap.Int("qty", qty))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sheet(s) of %dx%dmm on hand\n",
				args[0], inv.CountSheets(args[0], w, h), w, h)
			return nil
		},
	}
}

func newStockCheckCmd(app *appContext, invPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check <project.json>",
		Short: "Check whether stock on hand covers a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(resolveInventoryPath(invPath))
			if err != nil {
				return err
			}
			result, err := quoteForStock(app, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			shortages := inv.CheckQuote(result)
			if len(shortages) == 0 {
				fmt.Fprintln(out, "Stock on hand covers this job.")
				return nil
			}
			for _, s := range shortages {
				fmt.Fprintf(out, "SHORT: %s %s: need %d, have %d\n",
					s.MaterialID, s.Stock, s.Needed, s.OnHand)
			}
			return nil
		},
	}
}

func newStockConsumeCmd(app *appContext, invPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "consume <project.json>",
		Short: "Remove a cut project's stock from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveInventoryPath(invPath)
			inv, err := project.LoadInventory(path)
			if err != nil {
				return err
			}
			result, err := quoteForStock(app, args[0])
			if err != nil {
				return err
			}

			inv.ConsumeQuote(result)
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d bar(s) and %d sheet(s) from stock\n",
				result.TotalBars(), result.TotalSheets())
			return nil
		},
	}
}

// quoteForStock recomputes a project's plans for inventory operations.
func quoteForStock(app *appContext, path string) (*model.QuoteResult, error) {
	p, err := project.LoadProject(path)
	if err != nil {
		return nil, err
	}
	applyWorkshopDefaults(&p, app.workshop)
	return project.Quote(p, app.registry)
}

// ─── styles ───

func newStylesCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Inspect and manage the style catalog",
	}
	cmd.AddCommand(newStylesListCmd(app))
	cmd.AddCommand(newStylesShowCmd(app))
	cmd.AddCommand(newStylesSeedCmd(app))
	cmd.AddCommand(newStylesExportCmd(app))
	cmd.AddCommand(newStylesImportCmd(app))
	return cmd
}

func newStylesListCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			custom := map[string]bool{}
			for _, d := range app.registry.Custom {
				custom[d.StyleID] = true
			}
			for _, id := range app.registry.IDs() {
				d, _ := app.registry.Lookup(id)
				marker := " "
				if custom[id] {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-24s %s\n", marker, id, d.Name)
			}
			if len(custom) > 0 {
				fmt.Fprintln(out, "(* from catalog file)")
			}
			return nil
		},
	}
}

func newStylesShowCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <style-id>",
		Short: "Show a style's components and formulas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := app.registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown style %q", args[0])
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s: %s\n", d.StyleID, d.Name)
			if len(d.Variables) > 0 {
				fmt.Fprintln(out, "Variables:")
				names := make([]string, 0, len(d.Variables))
				for name := range d.Variables {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "  %-14s = %s\n", name, d.Variables[name])
				}
			}
			fmt.Fprintln(out, "Components:")
			for _, c := range d.Components {
				line := fmt.Sprintf("  %-14s %-20s x%-3d %-12s %-10s",
					c.ComponentID, c.Name, c.Quantity, c.MaterialID, c.Shape)
				if c.FormulaLength != "" {
					line += "  L = " + c.FormulaLength
				}
				if c.FormulaWidth != "" {
					line += "  W = " + c.FormulaWidth
				}
				if c.Orientation != "" {
					line += fmt.Sprintf("  (%s)", strings.ToLower(string(c.Orientation)))
				}
				if c.OffcutMM > 0 {
					line += fmt.Sprintf("  trim %dmm", c.OffcutMM)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newStylesSeedCmd(app *appContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed <file>",
		Short: "Write the built-in styles to a catalog file for customizing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}
			}
			if err := style.SaveCatalog(path, style.BuiltinStyles); err != nil {
				return err
			}
			app.logger.Info("seeded style catalog",
				zap.String("path", path),
				zap.Int("styles", len(style.BuiltinStyles)))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d style(s) to %s\n", len(style.BuiltinStyles), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newStylesExportCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the custom styles to a versioned backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := style.ExportBackup(args[0], app.registry.Custom); err != nil {
				return err
			}
			app.logger.Info("exported style backup",
				zap.String("path", args[0]),
				zap.Int("styles", len(app.registry.Custom)))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d style(s) to %s\n", len(app.registry.Custom), args[0])
			return nil
		},
	}
}

func newStylesImportCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge styles from a backup file into the catalog",
		Long: `Import reads a backup written by styles export and folds its styles
into the active catalog file. A style with an id already in the catalog
is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := style.ImportBackup(args[0])
			if err != nil {
				return err
			}
			for _, d := range backup.Styles {
				if err := app.registry.Add(d); err != nil {
					return err
				}
			}
			if err := style.SaveCatalog(app.catalogPath, app.registry.Custom); err != nil {
				return err
			}
			app.logger.Info("imported style backup",
				zap.String("path", args[0]),
				zap.Int("styles", len(backup.Styles)),
				zap.String("catalog", app.catalogPath))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d style(s) into %s\n", len(backup.Styles), app.catalogPath)
			return nil
		},
	}
}

// ─── version ───

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fundicut %s (%s)\n", version, commit)
		},
	}
}
