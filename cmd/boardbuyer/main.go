// BoardBuyer — Cutting Stock Purchase Optimizer
//
// A command line tool that takes a list of required rectangular pieces
// and a catalogue of purchasable board sizes, and produces a cutting
// plan plus a shopping list of boards to buy at low total cost.
//
// Build:
//   go build -o boardbuyer ./cmd/boardbuyer
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardbuyer/boardbuyer/internal/engine"
	"github.com/boardbuyer/boardbuyer/internal/export"
	"github.com/boardbuyer/boardbuyer/internal/importer"
	"github.com/boardbuyer/boardbuyer/internal/model"
	"github.com/boardbuyer/boardbuyer/internal/project"
	"github.com/boardbuyer/boardbuyer/internal/server"
	"github.com/boardbuyer/boardbuyer/internal/shopping"
)

var cmdRoot = cobra.Command{
	Use:           "boardbuyer",
	Short:         "BoardBuyer optimizes which boards to buy for a cut list.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var optimizeFlags struct {
	pieces   string
	boards   string
	noRotate bool
	pdf      string
	pngDir   string
	dxf      string
	xlsx     string
	labels   string
	saveTo   string
	offcuts  bool
}

var cmdOptimize = cobra.Command{
	Use:   "optimize --pieces <file>",
	Short: "Compute a cutting plan and shopping list for a piece list.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		pieces, err := loadPieces(optimizeFlags.pieces)
		if err != nil {
			return err
		}
		boards, err := loadBoards(optimizeFlags.boards)
		if err != nil {
			return err
		}

		settings := model.DefaultSettings()
		settings.AllowRotation = !optimizeFlags.noRotate

		opt := engine.New(settings)
		opt.Progress = engine.ProgressFunc(func(board model.BoardType, placed, remaining int) {
			logrus.Infof("committed %dx%d board: %d piece(s) placed, %d remaining",
				board.Width, board.Height, placed, remaining)
		})

		plan, err := opt.Optimize(pieces, boards)
		if err != nil {
			return err
		}

		fmt.Printf("Boards purchased: %d   Total cost: %.2f   Efficiency: %.1f%%\n\n",
			len(plan.Boards), plan.TotalCost(), plan.TotalEfficiency())
		fmt.Print(shopping.Format(shopping.Aggregate(plan)))

		if optimizeFlags.offcuts {
			printOffcuts(plan)
		}

		return writeExports(plan, pieces, boards, settings)
	},
}

var compareFlags struct {
	pieces string
	boards string
}

var cmdCompare = cobra.Command{
	Use:   "compare --pieces <file>",
	Short: "Compare optimizer settings side by side.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		pieces, err := loadPieces(compareFlags.pieces)
		if err != nil {
			return err
		}
		boards, err := loadBoards(compareFlags.boards)
		if err != nil {
			return err
		}

		results := engine.CompareScenarios(engine.DefaultScenarios(model.DefaultSettings()), pieces, boards)
		fmt.Printf("%-25s %8s %10s %8s\n", "Scenario", "Boards", "Cost", "Waste")
		for _, res := range results {
			if res.Err != nil {
				fmt.Printf("%-25s %s\n", res.Scenario.Name, res.Err)
				continue
			}
			fmt.Printf("%-25s %8d %10.2f %7.1f%%\n",
				res.Scenario.Name, res.BoardsUsed, res.TotalCost, res.WastePercent)
		}
		return nil
	},
}

var serveFlags struct {
	addr string
}

var cmdServe = cobra.Command{
	Use:   "serve",
	Short: "Run the optimizer as an HTTP JSON API.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		logrus.Infof("listening on %s", serveFlags.addr)
		return server.NewRouter().Run(serveFlags.addr)
	},
}

var catalogueFlags struct {
	exportTo   string
	importFrom string
}

var cmdCatalogue = cobra.Command{
	Use:   "catalogue",
	Short: "Show, export, or import the stored board catalogue.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if catalogueFlags.importFrom != "" {
			backup, err := project.ImportAllData(catalogueFlags.importFrom)
			if err != nil {
				return err
			}
			path, err := project.DefaultCataloguePath()
			if err != nil {
				return err
			}
			if err := project.SaveCatalogue(path, backup.Catalogue); err != nil {
				return err
			}
			logrus.Infof("imported %d board(s) from %s (created %s)",
				len(backup.Catalogue), catalogueFlags.importFrom, backup.CreatedAt)
			return nil
		}

		boards, path, err := project.LoadOrCreateCatalogue()
		if err != nil {
			return err
		}

		if catalogueFlags.exportTo != "" {
			if err := project.ExportAllData(catalogueFlags.exportTo, boards, model.DefaultSettings()); err != nil {
				return err
			}
			logrus.Infof("wrote %s", catalogueFlags.exportTo)
			return nil
		}

		fmt.Printf("Catalogue (%s):\n", path)
		for _, b := range boards {
			fmt.Printf("  %-28s %5dx%-5d mm  %8.2f\n", b.Label, b.Width, b.Height, b.Cost)
		}
		return nil
	},
}

func loadPieces(path string) ([]model.Piece, error) {
	if path == "" {
		return nil, fmt.Errorf("--pieces is required")
	}
	res := importer.ImportPieces(path)
	for _, w := range res.Warnings {
		logrus.Warn(w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			logrus.Error(e)
		}
		return nil, fmt.Errorf("piece list %s has %d error(s)", path, len(res.Errors))
	}
	return res.Pieces, nil
}

func loadBoards(path string) ([]model.BoardType, error) {
	if path == "" {
		boards, cataloguePath, err := project.LoadOrCreateCatalogue()
		if err != nil {
			return nil, err
		}
		logrus.Infof("using board catalogue from %s", cataloguePath)
		return boards, nil
	}
	res := importer.ImportBoards(path)
	for _, w := range res.Warnings {
		logrus.Warn(w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			logrus.Error(e)
		}
		return nil, fmt.Errorf("board catalogue %s has %d error(s)", path, len(res.Errors))
	}
	return res.Boards, nil
}

func printOffcuts(plan model.Plan) {
	fmt.Println("\nUsable offcuts:")
	found := false
	for _, cb := range plan.Boards {
		for _, oc := range model.DetectOffcuts(cb) {
			fmt.Printf("  board %d: %dx%d mm at (%d, %d)\n", oc.BoardIndex, oc.Width, oc.Height, oc.X, oc.Y)
			found = true
		}
	}
	if !found {
		fmt.Println("  (none)")
	}
}

func writeExports(plan model.Plan, pieces []model.Piece, boards []model.BoardType, settings model.Settings) error {
	if optimizeFlags.pdf != "" {
		if err := export.PDF(optimizeFlags.pdf, plan); err != nil {
			return err
		}
		logrus.Infof("wrote %s", optimizeFlags.pdf)
	}
	if optimizeFlags.pngDir != "" {
		if err := export.PNGs(optimizeFlags.pngDir, plan); err != nil {
			return err
		}
		logrus.Infof("wrote board renders to %s", optimizeFlags.pngDir)
	}
	if optimizeFlags.dxf != "" {
		if err := export.DXF(optimizeFlags.dxf, plan); err != nil {
			return err
		}
		logrus.Infof("wrote %s", optimizeFlags.dxf)
	}
	if optimizeFlags.xlsx != "" {
		if err := export.XLSX(optimizeFlags.xlsx, plan); err != nil {
			return err
		}
		logrus.Infof("wrote %s", optimizeFlags.xlsx)
	}
	if optimizeFlags.labels != "" {
		if err := export.Labels(optimizeFlags.labels, plan); err != nil {
			return err
		}
		logrus.Infof("wrote %s", optimizeFlags.labels)
	}
	if optimizeFlags.saveTo != "" {
		p := model.Project{
			Name:      "BoardBuyer project",
			Pieces:    pieces,
			Catalogue: boards,
			Settings:  settings,
			Plan:      &plan,
		}
		if err := project.Save(optimizeFlags.saveTo, p); err != nil {
			return err
		}
		logrus.Infof("wrote %s", optimizeFlags.saveTo)
	}
	return nil
}

func main() {
	f := cmdOptimize.Flags()
	f.StringVar(&optimizeFlags.pieces, "pieces", "", "piece list file (CSV or XLSX)")
	f.StringVar(&optimizeFlags.boards, "boards", "", "board catalogue file (CSV or XLSX); defaults to the stored catalogue")
	f.BoolVar(&optimizeFlags.noRotate, "no-rotate", false, "forbid 90 degree rotation of pieces")
	f.StringVar(&optimizeFlags.pdf, "pdf", "", "write the plan as a PDF to this path")
	f.StringVar(&optimizeFlags.pngDir, "png-dir", "", "write one PNG per board into this directory")
	f.StringVar(&optimizeFlags.dxf, "dxf", "", "write the plan as a DXF drawing to this path")
	f.StringVar(&optimizeFlags.xlsx, "xlsx", "", "write the plan as an Excel workbook to this path")
	f.StringVar(&optimizeFlags.labels, "labels", "", "write QR part labels as a PDF to this path")
	f.StringVar(&optimizeFlags.saveTo, "save", "", "save the project (inputs and plan) as JSON to this path")
	f.BoolVar(&optimizeFlags.offcuts, "offcuts", false, "list usable offcuts per board")

	cf := cmdCompare.Flags()
	cf.StringVar(&compareFlags.pieces, "pieces", "", "piece list file (CSV or XLSX)")
	cf.StringVar(&compareFlags.boards, "boards", "", "board catalogue file (CSV or XLSX); defaults to the stored catalogue")

	cmdServe.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "listen address")

	gf := cmdCatalogue.Flags()
	gf.StringVar(&catalogueFlags.exportTo, "export", "", "export the catalogue and settings as a backup JSON file")
	gf.StringVar(&catalogueFlags.importFrom, "import", "", "replace the stored catalogue from a backup JSON file")

	cmdRoot.AddCommand(&cmdOptimize, &cmdCompare, &cmdServe, &cmdCatalogue)

	if err := cmdRoot.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
