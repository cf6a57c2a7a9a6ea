package reentry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ExportConfig configures the CSV state stream.
type ExportConfig struct {
	Filename  string
	AsCSV     bool
	Timestamp bool // append a timestamp to the file name
}

// IsUseless returns whether this config would output anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV || c.Filename == ""
}

// ExportState is one per-satellite record pushed down the history channel
// after each step.
type ExportState struct {
	DT  time.Time
	Sat Satellite
}

// StreamStates drains the state channel into a CSV file under outputDir.
// It returns once the channel is closed and the file is flushed.
func StreamStates(outputDir string, conf ExportConfig, stateChan <-chan ExportState) {
	if conf.IsUseless() {
		for range stateChan {
			// Drain so the engine never blocks.
		}
		return
	}
	name := conf.Filename
	if conf.Timestamp {
		name = fmt.Sprintf("%s-%s", name, time.Now().UTC().Format("2006-01-02T15.04.05"))
	}
	f, err := os.Create(fmt.Sprintf("%s/prop-%s.csv", outputDir, name))
	if err != nil {
		panic(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	w.Write([]string{"time", "satellite", "x", "y", "z", "vx", "vy", "vz", "invalid"})
	for state := range stateChan {
		record := make([]string, 0, 9)
		record = append(record, state.DT.UTC().Format(time.RFC3339))
		record = append(record, state.Sat.ID)
		for i := 0; i < 3; i++ {
			record = append(record, strconv.FormatFloat(state.Sat.R[i], 'f', 6, 64))
		}
		for i := 0; i < 3; i++ {
			record = append(record, strconv.FormatFloat(state.Sat.V[i], 'f', 9, 64))
		}
		record = append(record, strconv.FormatBool(state.Sat.Invalid))
		w.Write(record)
	}
}
