package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// AnalyzeLogFile reads a game log written by Run and summarizes it.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	results, err := readLog(file)
	if err != nil {
		return "", err
	}
	return FormatSummary(Summarize(results)), nil
}

func readLog(rd io.Reader) ([]Result, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = len(LogHeader)
	var results []Result
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == LogHeader[0] {
			// this is the header line
			continue
		}
		solved, err := strconv.ParseBool(record[2])
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			Answer:  record[0],
			Guesses: strings.Fields(record[3]),
			Solved:  solved,
		})
	}
	return results, nil
}

// FormatSummary renders a summary for people.
func FormatSummary(sum Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", sum.Games)
	if sum.Games == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, "Solved: %d (%.3f%%)\n", sum.Solved, 100.0*float64(sum.Solved)/float64(sum.Games))
	fmt.Fprintf(&sb, "Mean guesses: %.4f ± %.4f  Stdev: %.4f  Worst: %d\n",
		sum.Mean, sum.CI95, sum.Stdev, sum.Worst)
	for n := 1; n <= sum.Worst; n++ {
		if c := sum.Distribution[n]; c > 0 {
			fmt.Fprintf(&sb, "%3d: %d\n", n, c)
		}
	}
	if len(sum.Failures) > 0 {
		fmt.Fprintf(&sb, "Not solved: %s\n", strings.Join(sum.Failures, " "))
	}
	return sb.String()
}
