package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/xolan/daylog/internal/entry"
)

// CSVHeader is the column layout of CSV exports.
var CSVHeader = []string{
	"Date", "Time", "Type", "Title", "Content",
	"Mood", "Energy", "Sleep Hours", "Sleep Quality",
	"Exercise Type", "Duration", "Intensity",
	"Social Type", "Social Energy",
	"Skill", "Learning Time", "Status", "Learning Method",
	"Creative Type", "Creative Energy",
	"Career Activity", "Career Feeling", "Career Hours",
}

// cell is one CSV field. Text cells are always quoted; the rest are
// written bare.
type cell struct {
	value string
	text  bool
}

func text(v string) cell { return cell{value: v, text: true} }
func bare(v string) cell { return cell{value: v} }

// WriteCSV writes entries as CSV with CSVHeader. Every row has exactly
// len(CSVHeader) fields.
func WriteCSV(w io.Writer, entries []entry.Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(CSVHeader, ",") + "\n"); err != nil {
		return err
	}

	for _, e := range entries {
		if err := writeRow(bw, csvRow(entry.FromEntry(e))); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func csvRow(r entry.Record) []cell {
	return []cell{
		bare(r.Date),
		bare(r.Time),
		bare(r.Type),
		text(r.Title),
		text(r.Content),
		text(r.Mood),
		text(r.Energy),
		bare(r.SleepHours.String()),
		text(r.SleepQuality),
		text(r.ExerciseType),
		bare(r.Duration.String()),
		text(r.Intensity),
		text(r.SocialType),
		text(r.SocialEnergy),
		text(r.SkillName),
		bare(r.LearningTime.String()),
		text(r.SkillStatus),
		text(r.LearningMethod),
		text(r.CreativeType),
		text(r.CreativeEnergy),
		text(r.CareerActivity),
		text(r.CareerFeeling),
		bare(r.CareerHours.String()),
	}
}

func writeRow(w *bufio.Writer, cells []cell) error {
	for i, c := range cells {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		v := c.value
		if c.text {
			v = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		if _, err := w.WriteString(v); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
