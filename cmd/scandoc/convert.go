package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scandoc/internal/discover"
	"github.com/pdiddy/scandoc/internal/history"
	"github.com/pdiddy/scandoc/internal/pipeline"
	"github.com/pdiddy/scandoc/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert PDFs or images into scanned-looking PDFs",
	Long: `Convert scans the input folder for matching files and writes one
<stem>_output.pdf beside each source. PDF mode converts each document
individually; image mode merges all matching images into a single output
named after the first image.

Individual input failures are reported and never abort the batch.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("input-folder", "i", "", "folder to read files from (default: current directory)")
	convertCmd.Flags().StringP("file-type", "f", "pdf", "what to process: pdf, image, or a specific file name")
	convertCmd.Flags().IntP("quality", "q", types.DefaultQuality, "output quality, 50-100")
	convertCmd.Flags().BoolP("askew", "a", true, "tilt output pages slightly")
	convertCmd.Flags().BoolP("black-and-white", "b", false, "grayscale photocopy look")
	convertCmd.Flags().BoolP("blur", "l", false, "blur output pages slightly")
	convertCmd.Flags().Float64("contrast", 1.0, "contrast factor, 1.0 leaves pages unchanged")
	convertCmd.Flags().Float64("sharpness", 1.0, "sharpness factor, 1.0 leaves pages unchanged")
	convertCmd.Flags().Float64("brightness", 1.0, "brightness factor, 1.0 leaves pages unchanged")
	convertCmd.Flags().BoolP("recurse", "r", false, "search sub-folders for matching files")
	convertCmd.Flags().StringP("sort-by", "s", "name", "file order: name, ctime, mtime, or none")
	convertCmd.Flags().IntP("jobs", "j", 1, "number of inputs processed concurrently")
	convertCmd.Flags().String("report", "", "write a YAML batch report to this path")
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the history ledger")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	effectCfg := effectConfigFromFlags(cmd).Normalize()
	discoveryCfg := discoveryConfigFromFlags(cmd)

	descs, mode, err := discover.Resolve(discoveryCfg)
	if err != nil {
		return err
	}

	blue := color.New(color.FgBlue)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	blue.Fprintf(os.Stdout, "Files found: %d (mode=%s)\n\n", inputFileCount(descs), mode)
	if len(descs) == 0 {
		red.Fprintln(os.Stdout, "No matching files found. No output documents generated!")
		return nil
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	reportPath, _ := cmd.Flags().GetString("report")
	opts := pipeline.Options{Jobs: jobs, ReportPath: reportPath}

	batch := pipeline.Run(descs, effectCfg, opts, os.Stdout)

	recordHistory(cmd, batch)

	if batch.HasFailures() {
		red.Fprintf(os.Stdout, "\n%d of %d input(s) failed.\n", batch.Failed, batch.Total())
	}
	if batch.Pages > 0 {
		green.Fprintf(os.Stdout, "\nYou just saved %s of energy by not printing %d page(s) of paper!\n",
			history.EnergySaved(batch.Pages), batch.Pages)
	}
	return nil
}

// effectConfigFromFlags builds the effect config, letting an explicit flag
// win over a value from the viper config file.
func effectConfigFromFlags(cmd *cobra.Command) types.EffectConfig {
	cfg := types.DefaultEffectConfig()

	cfg.Quality = intSetting(cmd, "quality")
	cfg.Askew = boolSetting(cmd, "askew")
	cfg.BlackAndWhite = boolSetting(cmd, "black-and-white")
	cfg.Blur = boolSetting(cmd, "blur")
	cfg.Contrast, _ = cmd.Flags().GetFloat64("contrast")
	cfg.Sharpness, _ = cmd.Flags().GetFloat64("sharpness")
	cfg.Brightness, _ = cmd.Flags().GetFloat64("brightness")

	return cfg
}

func discoveryConfigFromFlags(cmd *cobra.Command) types.DiscoveryConfig {
	cfg := types.DefaultDiscoveryConfig()

	folder, _ := cmd.Flags().GetString("input-folder")
	if folder == "" {
		folder = viper.GetString("input_folder")
	}
	if folder == "" {
		folder, _ = os.Getwd()
		fmt.Fprintln(os.Stderr, "Defaulting to current directory")
	}
	cfg.Folder = folder

	if cmd.Flags().Changed("file-type") {
		cfg.Filter, _ = cmd.Flags().GetString("file-type")
	} else if v := viper.GetString("file_type"); v != "" {
		cfg.Filter = v
	}

	cfg.Recurse = boolSetting(cmd, "recurse")

	if cmd.Flags().Changed("sort-by") {
		s, _ := cmd.Flags().GetString("sort-by")
		cfg.SortBy = types.SortOrder(s)
	} else if v := viper.GetString("sort_by"); v != "" {
		cfg.SortBy = types.SortOrder(v)
	}

	return cfg
}

// intSetting resolves a flag against the config file: explicit flags win,
// then the config file, then the flag default.
func intSetting(cmd *cobra.Command, name string) int {
	if !cmd.Flags().Changed(name) && viper.IsSet(configKey(name)) {
		return viper.GetInt(configKey(name))
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func boolSetting(cmd *cobra.Command, name string) bool {
	if !cmd.Flags().Changed(name) && viper.IsSet(configKey(name)) {
		return viper.GetBool(configKey(name))
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}

// configKey maps a flag name to its config-file key ("sort-by" -> "sort_by").
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func inputFileCount(descs []types.InputDescriptor) int {
	n := 0
	for _, d := range descs {
		n += len(d.Paths)
	}
	return n
}

func recordHistory(cmd *cobra.Command, batch pipeline.BatchResult) {
	if skip, _ := cmd.Flags().GetBool("no-history"); skip {
		return
	}
	ledger, err := history.Open(history.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: opening history ledger: %v\n", err)
		return
	}
	defer ledger.Close()

	for _, res := range batch.Results {
		if err := ledger.Record(res); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return
		}
	}
}
