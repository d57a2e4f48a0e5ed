package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okoamaisha/platform/pkg/artifacts"
	"github.com/okoamaisha/platform/pkg/assessment"
	"github.com/okoamaisha/platform/pkg/common/config"
	"github.com/okoamaisha/platform/pkg/common/logger"
	"github.com/okoamaisha/platform/pkg/common/models"
	"github.com/okoamaisha/platform/pkg/intake"
	"github.com/okoamaisha/platform/pkg/serving/predictor"
	"github.com/okoamaisha/platform/pkg/terminology"
)

type options struct {
	artifactDir string
	boundsFile  string
	termsFile   string
	retryDelay  time.Duration
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	cfg := config.Load()
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "losctl",
		Short:         "Length-of-stay prediction tools",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&opts.artifactDir, "artifacts", cfg.ArtifactDir, "directory holding the model artifact bundle")
	rootCmd.PersistentFlags().StringVar(&opts.boundsFile, "bounds", cfg.InputBoundsFile, "YAML file with input bounds (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&opts.termsFile, "terminology", cfg.TerminologyFile, "YAML terminology catalog (default: built-in)")
	rootCmd.PersistentFlags().DurationVar(&opts.retryDelay, "retry-delay", cfg.ArtifactRetryDelay, "delay before retrying a failed artifact read")

	rootCmd.AddCommand(predictCmd(opts))
	rootCmd.AddCommand(encodeCmd(opts))
	rootCmd.AddCommand(inspectCmd(opts))
	return rootCmd
}

func predictCmd(opts *options) *cobra.Command {
	var inputPath string
	var report bool
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict length of stay for one encounter",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPredictor(opts)
			if err != nil {
				return err
			}
			input, err := readInput(inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			resp, err := p.Predict(context.Background(), input)
			if err != nil {
				return err
			}
			if report {
				fmt.Fprintln(cmd.OutOrStdout(), assessment.Report(resp.Days, resp.ComorbidityCount, resp.Readmissions))
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "f", "-", "clinical input JSON file (- for stdin)")
	cmd.Flags().BoolVar(&report, "report", false, "print the plain-text report instead of JSON")
	return cmd
}

func encodeCmd(opts *options) *cobra.Command {
	var inputPath string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the named feature vector for one encounter",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPredictor(opts)
			if err != nil {
				return err
			}
			input, err := readInput(inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			vec, err := p.Encode(input)
			if err != nil {
				return err
			}
			names, values := vec.Names(), vec.Values()
			for i := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %g\n", names[i], values[i])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "f", "-", "clinical input JSON file (- for stdin)")
	return cmd
}

func inspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Validate the artifact bundle and describe it",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := artifacts.NewLoader(opts.artifactDir, opts.retryDelay).Load()
			if err != nil {
				return err
			}
			unknown := make([]string, 0)
			for _, u := range bundle.Encoder.Unknown() {
				unknown = append(unknown, u.Name)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"model":            bundle.ModelInfo(),
				"feature_names":    bundle.FeatureNames,
				"comorbidity_cols": bundle.Metadata.ComorbidityCols,
				"unknown_features": unknown,
			})
		},
	}
}

func newPredictor(opts *options) (*predictor.Predictor, error) {
	bundle, err := artifacts.NewLoader(opts.artifactDir, opts.retryDelay).Load()
	if err != nil {
		return nil, err
	}
	bounds, err := intake.LoadBounds(opts.boundsFile)
	if err != nil {
		return nil, fmt.Errorf("load input bounds: %w", err)
	}
	catalog, err := terminology.Load(opts.termsFile)
	if err != nil {
		return nil, fmt.Errorf("load terminology: %w", err)
	}
	validator := intake.NewValidator(bounds, bundle.Metadata.ComorbidityCols).WithCatalog(catalog)
	return predictor.NewPredictor(bundle, validator), nil
}

func readInput(path string, stdin io.Reader) (models.ClinicalInput, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return models.ClinicalInput{}, err
		}
		defer f.Close()
		r = f
	}
	var input models.ClinicalInput
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return models.ClinicalInput{}, fmt.Errorf("decode clinical input: %w", err)
	}
	return input, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
