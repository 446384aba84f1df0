// Command ltifreq computes frequency responses of LTI systems defined in
// YAML files and exports Bode, Nyquist and singular value data as CSV or
// JSON. It computes data only; plotting is left to external tools.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hammal/lti/freq"
)

var (
	wmin   float64
	wmax   float64
	points int
	format string
	output string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ltifreq",
		Short: "frequency response analysis of LTI systems",
	}
	rootCmd.PersistentFlags().Float64Var(&wmin, "wmin", 0, "lower frequency bound in rad/s (0 = automatic grid)")
	rootCmd.PersistentFlags().Float64Var(&wmax, "wmax", 0, "upper frequency bound in rad/s (0 = automatic grid)")
	rootCmd.PersistentFlags().IntVar(&points, "points", 200, "number of frequency points for an explicit grid")
	rootCmd.PersistentFlags().StringVar(&format, "format", "csv", "output format: csv or json")
	rootCmd.PersistentFlags().StringVar(&output, "output", "", "output file (default stdout)")

	bodeCmd := &cobra.Command{
		Use:   "bode [system.yaml]",
		Short: "magnitude and unwrapped phase in degrees",
		Args:  cobra.ExactArgs(1),
		RunE:  runBode,
	}
	nyquistCmd := &cobra.Command{
		Use:   "nyquist [system.yaml]",
		Short: "real and imaginary parts of the response",
		Args:  cobra.ExactArgs(1),
		RunE:  runNyquist,
	}
	sigmaCmd := &cobra.Command{
		Use:   "sigma [system.yaml]",
		Short: "singular values of the transfer matrix",
		Args:  cobra.ExactArgs(1),
		RunE:  runSigma,
	}
	freqrespCmd := &cobra.Command{
		Use:   "freqresp [system.yaml]",
		Short: "raw complex frequency response",
		Args:  cobra.ExactArgs(1),
		RunE:  runFreqResp,
	}
	rootCmd.AddCommand(bodeCmd, nyquistCmd, sigmaCmd, freqrespCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// grid returns the explicit frequency vector requested by the flags, or nil
// for the automatic pole/zero based grid.
func grid() []float64 {
	if wmin <= 0 || wmax <= wmin {
		return nil
	}
	return freq.Logspace(math.Log10(wmin), math.Log10(wmax), points)
}

func runBode(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem(args[0])
	if err != nil {
		return err
	}
	mag, phase, w := freq.Bode(sys, grid())
	header := []string{"w"}
	header = appendChannelHeader(header, "mag", mag.Ny, mag.Nu)
	header = appendChannelHeader(header, "phase", mag.Ny, mag.Nu)
	rows := make([][]float64, len(w))
	for k := range w {
		row := []float64{w[k]}
		row = appendChannels(row, mag, k)
		row = appendChannels(row, phase, k)
		rows[k] = row
	}
	return write(header, rows)
}

func runNyquist(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem(args[0])
	if err != nil {
		return err
	}
	re, im, w := freq.Nyquist(sys, grid())
	header := []string{"w"}
	header = appendChannelHeader(header, "re", re.Ny, re.Nu)
	header = appendChannelHeader(header, "im", re.Ny, re.Nu)
	rows := make([][]float64, len(w))
	for k := range w {
		row := []float64{w[k]}
		row = appendChannels(row, re, k)
		row = appendChannels(row, im, k)
		rows[k] = row
	}
	return write(header, rows)
}

func runSigma(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem(args[0])
	if err != nil {
		return err
	}
	sv, w := freq.Sigma(sys, grid())
	_, rank := sv.Dims()
	header := []string{"w"}
	for r := 0; r < rank; r++ {
		header = append(header, fmt.Sprintf("sigma_%d", r+1))
	}
	rows := make([][]float64, len(w))
	for k := range w {
		row := []float64{w[k]}
		for r := 0; r < rank; r++ {
			row = append(row, sv.At(k, r))
		}
		rows[k] = row
	}
	return write(header, rows)
}

func runFreqResp(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem(args[0])
	if err != nil {
		return err
	}
	resp := freq.FreqResp(sys, grid())
	header := []string{"w"}
	header = appendChannelHeader(header, "re", resp.Ny, resp.Nu)
	header = appendChannelHeader(header, "im", resp.Ny, resp.Nu)
	rows := make([][]float64, resp.Len())
	for k := range rows {
		row := []float64{resp.Omega[k]}
		for i := 0; i < resp.Ny; i++ {
			for j := 0; j < resp.Nu; j++ {
				row = append(row, real(resp.At(k, i, j)))
			}
		}
		for i := 0; i < resp.Ny; i++ {
			for j := 0; j < resp.Nu; j++ {
				row = append(row, imag(resp.At(k, i, j)))
			}
		}
		rows[k] = row
	}
	return write(header, rows)
}

func appendChannelHeader(header []string, name string, ny, nu int) []string {
	for i := 0; i < ny; i++ {
		for j := 0; j < nu; j++ {
			header = append(header, fmt.Sprintf("%s_%d_%d", name, i+1, j+1))
		}
	}
	return header
}

func appendChannels(row []float64, g *freq.Grid, k int) []float64 {
	for i := 0; i < g.Ny; i++ {
		for j := 0; j < g.Nu; j++ {
			row = append(row, g.At(k, i, j))
		}
	}
	return row
}

func write(header []string, rows [][]float64) error {
	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	switch format {
	case "csv":
		w := csv.NewWriter(out)
		if err := w.Write(header); err != nil {
			return err
		}
		record := make([]string, len(header))
		for _, row := range rows {
			for c, v := range row {
				record[c] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Columns []string    `json:"columns"`
			Rows    [][]float64 `json:"rows"`
		}{header, rows})
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}
