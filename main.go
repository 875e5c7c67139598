package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// version is the application version, set via ldflags.
var version string = "dev"

var config = newConfig()

var rootCmd = &cobra.Command{
	Use:   "collect [FOLDER]",
	Short: "Collect matching source files of a folder into one summary document.",
	Long: `collect walks a folder under the root directory, picks every file whose
name ends with one of the target suffixes, and concatenates them into
<root>/<FOLDER>_summary.txt with a path header per file.

Without FOLDER it asks for the folder name interactively.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		console := NewConsole(os.Stdout, os.Stderr)

		opts, err := loadOptions(config)
		if err != nil {
			console.Error("%v", err)
			os.Exit(1)
		}
		if err := collect(opts, args, os.Stdin, console); err != nil {
			if errors.Is(err, errAborted) {
				console.Progress("Interactive selection aborted.")
				return
			}
			console.Error("%v", err)
			os.Exit(1)
		}
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("root", "r", "", "Root directory the folder is resolved against (default: current directory)")
	flags.StringSliceP("ext", "e", nil, "File suffixes to collect (comma-separated, default .js)")
	flags.StringSliceP("lang", "l", nil, "Language presets to collect, e.g. JavaScript,Python")
	flags.Bool("gitignore", false, "Skip files ignored by the folder's .gitignore")
	flags.Bool("pick", false, "Pick the folder with a fuzzy finder")
	flags.String("pdf", "", "Also render the summary as PDF to this path")
	flags.BoolP("copy", "c", false, "Copy the summary to the clipboard")
	flags.Bool("tokens", false, "Count tokens of the collected content")
	flags.String("tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	flags.String("model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	flags.String("tokenizer-file", "", "Path to local tokenizer file")

	cobra.CheckErr(config.BindPFlags(flags))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// collect runs one summary: resolve the folder, write the document and
// report the outcome on console.
func collect(opts Options, args []string, in io.Reader, console *Console) error {
	suffixes, err := resolveSuffixes(opts.Exts, opts.Langs)
	if err != nil {
		return err
	}
	agg, err := NewAggregator(opts.Root, suffixes)
	if err != nil {
		return err
	}
	agg.Gitignore = opts.Gitignore
	agg.Log = console

	var name string
	switch {
	case len(args) > 0:
		name = args[0]
	case opts.Pick:
		name, err = pickFolder(agg.Root)
	default:
		name, err = promptFolder(in, console.out, agg.Root, suffixes)
	}
	if err != nil {
		return err
	}

	target, err := agg.Validate(name)
	if err != nil {
		return err
	}

	if opts.Tokens {
		tk, err := loadTokenizer(opts.Tokenizer, console)
		if err != nil {
			console.Warn("token counting disabled: %v", err)
		} else {
			agg.Tokenizer = tk
		}
	}

	out := outputPath(agg.Root, target.Name)
	if rel, err := filepath.Rel(agg.Root, out); err == nil && !strings.HasPrefix(rel, "..") {
		agg.Exclude = append(agg.Exclude, filepath.ToSlash(rel))
	}

	console.Heading("Start Summarizing")
	console.Field("Target Folder", target.Name)
	console.Field("Summary File", filepath.Base(out)+" (saved in root directory)")
	console.Field("Traversal Order", traversalOrder)
	fmt.Fprintln(console.out)

	file := newFileSink(out)
	sinks := []RecordSink{NewTextSink(file)}
	var pdfSink *PDFSink
	if opts.PDF != "" {
		pdfSink = NewPDFSink()
		sinks = append(sinks, pdfSink)
	}

	summary, runErr := agg.Run(target.Name, MultiSink(sinks...))
	closeErr := file.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return closeErr
	}

	console.Heading("Summary Completed!")
	console.Field(fmt.Sprintf("Total %s files summarized", suffixes), summary.Files)
	if agg.Tokenizer != nil {
		console.Field("Total tokens", summary.Tokens)
	}
	console.Field("Summary file saved to", out)
	if summary.Files == 0 {
		console.Progress("Note: No %s files found in '%s'.", suffixes, target.Name)
	}

	if desc, ok, err := describeRepository(target.Dir); err != nil {
		console.Warn("%v", err)
	} else if ok {
		console.Field("Repository", desc)
	}

	if pdfSink != nil {
		if err := pdfSink.Save(opts.PDF); err != nil {
			console.Warn("%v", err)
		} else {
			console.Field("PDF saved to", opts.PDF)
		}
	}

	if opts.Copy {
		data, err := os.ReadFile(out)
		if err == nil {
			err = clipboard.WriteAll(string(data))
		}
		if err != nil {
			console.Warn("could not copy summary to clipboard: %v", err)
		} else {
			console.Done("Summary copied to clipboard.")
		}
	}
	return nil
}
