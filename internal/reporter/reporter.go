package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/stalefind/stalefind/internal/scan"
	"github.com/stalefind/stalefind/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// Reporter handles report generation for scan results
type Reporter struct {
	writer io.Writer
	format OutputFormat
	color  bool
}

// New creates a new Reporter. Color is enabled only when requested and the
// writer is a terminal.
func New(writer io.Writer, format OutputFormat, useColor bool) *Reporter {
	if f, ok := writer.(*os.File); ok {
		useColor = useColor && isatty.IsTerminal(f.Fd())
	} else {
		useColor = false
	}
	return &Reporter{
		writer: writer,
		format: format,
		color:  useColor,
	}
}

// Report generates a report of the given items
func (r *Reporter) Report(items []*scan.FileItem) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(items)
	case FormatJSON:
		return r.reportJSON(items)
	case FormatYAML:
		return r.reportYAML(items)
	case FormatSummary:
		return r.reportSummary(items)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func totalSize(items []*scan.FileItem) int64 {
	var total int64
	for _, item := range items {
		total += item.SizeBytes
	}
	return total
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(items []*scan.FileItem) error {
	header := "=== Stale File Summary ==="
	if r.color {
		header = color.New(color.Bold, color.FgCyan).Sprint(header)
	}
	fmt.Fprintf(r.writer, "%s\n", header)
	fmt.Fprintf(r.writer, "Total Files: %d\n", len(items))
	fmt.Fprintf(r.writer, "Total Size: %s\n", utils.FormatBytes(totalSize(items)))
	fmt.Fprintf(r.writer, "\nBreakdown by Type:\n")

	counts := make(map[scan.TypeGroup]int)
	sizes := make(map[scan.TypeGroup]int64)
	for _, item := range items {
		counts[item.TypeGroup]++
		sizes[item.TypeGroup] += item.SizeBytes
	}
	for _, group := range []scan.TypeGroup{scan.GroupImage, scan.GroupVideo, scan.GroupArchive, scan.GroupOther} {
		if counts[group] == 0 {
			continue
		}
		fmt.Fprintf(r.writer, "  %s: %d files, %s\n",
			group, counts[group], utils.FormatBytes(sizes[group]))
	}

	return nil
}

// reportTable generates a table report
func (r *Reporter) reportTable(items []*scan.FileItem) error {
	headerFmt := "%-60s | %-10s | %-8s | %s\n"
	header := fmt.Sprintf(headerFmt, "Path", "Size", "Type", "Last Used")
	if r.color {
		header = color.New(color.Bold).Sprint(header)
	}
	fmt.Fprint(r.writer, header)
	fmt.Fprintln(r.writer, strings.Repeat("-", 100))

	for _, item := range items {
		path := item.Path
		if len(path) > 60 {
			path = "..." + path[len(path)-57:]
		}

		size := utils.FormatBytes(item.SizeBytes)
		if r.color && item.SizeBytes >= 1<<30 {
			size = color.New(color.FgYellow).Sprint(size)
		}

		fmt.Fprintf(r.writer, "%-60s | %-10s | %-8s | %s\n",
			path,
			size,
			item.TypeGroup,
			item.LastUsedOrModified().Format("2006-01-02"))
	}

	fmt.Fprintln(r.writer, strings.Repeat("-", 100))
	fmt.Fprintf(r.writer, "Total: %d files, %s\n", len(items), utils.FormatBytes(totalSize(items)))

	return nil
}

// itemReport is the serialized shape shared by JSON and YAML output
type itemReport struct {
	Path        string `json:"path" yaml:"path"`
	SizeBytes   int64  `json:"size_bytes" yaml:"size_bytes"`
	Size        string `json:"size" yaml:"size"`
	Type        string `json:"type" yaml:"type"`
	ContentType string `json:"content_type" yaml:"content_type"`
	LastUsed    string `json:"last_used" yaml:"last_used"`
}

type report struct {
	Timestamp          string       `json:"timestamp" yaml:"timestamp"`
	TotalFiles         int          `json:"total_files" yaml:"total_files"`
	TotalSize          int64        `json:"total_size" yaml:"total_size"`
	TotalSizeFormatted string       `json:"total_size_formatted" yaml:"total_size_formatted"`
	Files              []itemReport `json:"files" yaml:"files"`
}

func buildReport(items []*scan.FileItem) report {
	files := make([]itemReport, 0, len(items))
	for _, item := range items {
		files = append(files, itemReport{
			Path:        item.Path,
			SizeBytes:   item.SizeBytes,
			Size:        utils.FormatBytes(item.SizeBytes),
			Type:        string(item.TypeGroup),
			ContentType: item.ContentType,
			LastUsed:    item.LastUsedOrModified().Format(time.RFC3339),
		})
	}
	return report{
		Timestamp:          time.Now().Format(time.RFC3339),
		TotalFiles:         len(items),
		TotalSize:          totalSize(items),
		TotalSizeFormatted: utils.FormatBytes(totalSize(items)),
		Files:              files,
	}
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(items []*scan.FileItem) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildReport(items))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(items []*scan.FileItem) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(buildReport(items))
}

// SaveToFile saves the report to a file
func SaveToFile(items []*scan.FileItem, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return New(file, format, false).Report(items)
}
