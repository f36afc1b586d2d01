package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"testmorph/internal/convert"
	"testmorph/internal/formats"
	"testmorph/internal/logging"
)

var (
	convertOutput string
	convertFormat string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a JSON export to the canonical test-management model",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output path (default stdout)")
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Source format override; empty = auto-detect")
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger := logging.New("convert")
	doc, _, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	var format formats.SupportedFormat
	if convertFormat != "" {
		format = formats.SupportedFormat(convertFormat)
		if !formats.DefaultRegistry().Has(format) {
			return fmt.Errorf("unknown format %q", convertFormat)
		}
	} else {
		detector, err := buildDetector()
		if err != nil {
			return err
		}
		res := detector.Detect(doc)
		format = res.Format
		logger.Info("detected format", "file", args[0], "format", format,
			"confidence", res.Confidences[format])
	}

	canonical := convert.Convert(doc, format)
	data, err := json.MarshalIndent(canonical, "", "  ")
	if err != nil {
		return fmt.Errorf("encode canonical model: %w", err)
	}
	data = append(data, '\n')

	if convertOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(convertOutput, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", convertOutput, err)
	}
	return nil
}
