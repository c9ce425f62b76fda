package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/complianceworks/fda483/internal/finetune"
)

const (
	defaultSeedFile    = "labeled_data_example.json"
	defaultDatasetFile = "finetuning_dataset.jsonl"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func usage() {
	printError("Usage:\n")
	printError("  finetune example [output.json]              write a labeled-data template\n")
	printError("  finetune prepare <labeled.json> [out.jsonl] build a chat-format dataset\n")
}

func main() {
	flag.Parse()

	switch flag.Arg(0) {
	case "example":
		out := flag.Arg(1)
		if out == "" {
			out = defaultSeedFile
		}
		if err := finetune.WriteSeed(out); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Example labeled data written to %s\n", out)
		fmt.Printf("Fill it in with real labeled cases, then run the prepare command.\n")

	case "prepare":
		in := flag.Arg(1)
		if in == "" {
			printError("Error: prepare needs the labeled data file\n")
			usage()
			os.Exit(1)
		}
		out := flag.Arg(2)
		if out == "" {
			out = defaultDatasetFile
		}

		examples, err := finetune.LoadExamples(in)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		records, err := finetune.BuildDataset(examples)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		if err := finetune.WriteJSONL(out, records); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Fine-tuning dataset complete!\n")
		fmt.Printf("- Examples: %d\n", len(records))
		fmt.Printf("- Output: %s\n", out)

	default:
		if flag.Arg(0) != "" {
			printError("Error: unknown command %q\n", flag.Arg(0))
		}
		usage()
		os.Exit(1)
	}
}
