package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/promptmix/pkg/mixer"
	"github.com/dmitrymomot/promptmix/pkg/sampler"
)

type generateOptions struct {
	template     string
	templateFile string
	data         string
	count        int
	seed         uint64
	seeded       bool
	attempts     int
	exhaustive   bool
	summaries    bool
	export       string
}

func newGenerateCmd() *cobra.Command {
	var o generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render unique combinations to stdout",
		Example: `  promptmix generate -t "Wearing [color] [item]" --data clothes.csv -n 5
  promptmix generate --template-file prompt.txt --data values.yaml -n 20 --export history.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.seeded = cmd.Flags().Changed("seed")
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.template, "template", "t", "", "template text with [tag] placeholders")
	f.StringVar(&o.templateFile, "template-file", "", "read the template from a file")
	f.StringVar(&o.data, "data", "", "CSV, TSV or YAML data source (required)")
	f.IntVarP(&o.count, "count", "n", 1, "number of combinations to render")
	f.Uint64Var(&o.seed, "seed", 0, "seed for reproducible output")
	f.IntVar(&o.attempts, "attempts", sampler.DefaultAttempts, "random draws per combination before giving up")
	f.BoolVar(&o.exhaustive, "exhaustive", false, "scan the remaining space when random draws fail")
	f.BoolVar(&o.summaries, "summary", false, "print the summary line before each text")
	f.StringVar(&o.export, "export", "", "write the history as CSV to this path")
	cmd.MarkFlagsMutuallyExclusive("template", "template-file")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runGenerate(ctx context.Context, out, errOut io.Writer, o generateOptions) error {
	if o.count < 1 {
		return fmt.Errorf("--count must be positive, got %d", o.count)
	}

	tmpl, err := o.loadTemplate()
	if err != nil {
		return err
	}

	smpOpts := []sampler.Option{sampler.WithAttempts(o.attempts)}
	if o.seeded {
		smpOpts = append(smpOpts, sampler.WithSeed(o.seed))
	}
	mixOpts := []mixer.Option{mixer.WithSampler(sampler.New(smpOpts...))}
	if o.exhaustive {
		mixOpts = append(mixOpts, mixer.WithExhaustiveFallback(0))
	}
	m := mixer.New(mixOpts...)

	if _, err := m.SetTemplate(tmpl); err != nil {
		return err
	}

	f, err := os.Open(o.data)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := m.LoadData(f, filepath.Base(o.data)); err != nil {
		return err
	}

	generated := 0
	for generated < o.count {
		rec, err := m.Generate(ctx)
		if errors.Is(err, sampler.ErrExhausted) {
			fmt.Fprintf(errOut, "warning: %v (rendered %d of %d)\n", err, generated, o.count)
			break
		}
		if err != nil {
			return err
		}
		if generated > 0 {
			fmt.Fprintln(out)
		}
		if o.summaries {
			fmt.Fprintln(out, rec.Summary)
		}
		fmt.Fprintln(out, rec.Text)
		generated++
	}

	if o.export != "" {
		return writeExport(o.export, m)
	}
	return nil
}

func (o generateOptions) loadTemplate() (string, error) {
	switch {
	case o.templateFile != "":
		raw, err := os.ReadFile(o.templateFile)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	case o.template != "":
		return o.template, nil
	default:
		return mixer.DefaultTemplate, nil
	}
}

func writeExport(path string, m *mixer.Session) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return m.WriteExport(f)
}
