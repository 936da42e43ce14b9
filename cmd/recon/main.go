// recon — офлайн-сверка четырёх файлов без HTTP: печатает итоги и пишет отчёт .xlsx.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"prodrecon/internal/config"
	"prodrecon/internal/fileio"
	"prodrecon/internal/reconcile/model"
	"prodrecon/internal/reconcile/service"
	"prodrecon/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	def := cfg.Params()

	paths := map[model.Role]*string{
		model.RoleMaterials:    flag.String("materials", "", "materials/components file (.xlsx, .xls, .csv)"),
		model.RoleProduction:   flag.String("production", "", "production file"),
		model.RoleRealTime:     flag.String("real", "", "shop-floor time file"),
		model.RoleReportedTime: flag.String("reported", "", "enterprise-reported time file"),
	}
	headerRow := flag.Int("header-row", 1, "header row (1-based) for all files")
	out := flag.String("out", "reconciliation.xlsx", "report path, empty to skip")
	p := model.Params{}
	flag.Float64Var(&p.WasteAllowance, "waste", def.WasteAllowance, "waste allowance fraction")
	flag.Float64Var(&p.ShortfallFactor, "shortfall", def.ShortfallFactor, "shortfall guard factor")
	flag.Float64Var(&p.TimeDeadBand, "dead-band", def.TimeDeadBand, "time dead band, hours")
	flag.Float64Var(&p.VisibilityFloorPct, "floor", def.VisibilityFloorPct, "visibility floor, percent")
	flag.Float64Var(&p.ProductionTolerance, "production-tol", def.ProductionTolerance, "production tolerance fraction")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -materials F -production F -real F -reported F [-out report.xlsx]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.LogFile = ""
	logger := config.SetupLogger(cfg)

	var batch model.Batch
	for _, role := range model.Roles {
		path := *paths[role]
		if path == "" {
			flag.Usage()
			os.Exit(1)
		}
		ds, err := load(path, *headerRow)
		if err != nil {
			logger.Fatal().Err(err).Str("role", string(role)).Msg("load")
		}
		ds.Role = role
		batch.Set(ds)
		logger.Info().Str("role", string(role)).Str("file", path).Int("rows", len(ds.Rows)).Strs("sheets", ds.Sheets).Msg("loaded")
	}

	sess := service.NewSession(p, logger)
	res, err := sess.Run(batch)
	if err != nil {
		logger.Fatal().Err(err).Msg("reconcile")
	}

	if *out != "" {
		if err := writeReport(*out, sess.Tables()); err != nil {
			logger.Fatal().Err(err).Msg("report")
		}
		logger.Info().Str("path", *out).Msg("report written")
	}

	if !res.Trusted() {
		logger.WithLevel(zerolog.ErrorLevel).Int("diagnostics", len(res.Diagnostics)).Msg("schema problems: results are not trustworthy")
		os.Exit(2)
	}
}

func load(path string, headerRow int) (model.RawDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.RawDataset{}, err
	}
	defer f.Close()
	return fileio.ReadAny(f, path, headerRow)
}

func writeReport(path string, tables []model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(f, tables); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
