// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Bar tracks the records processed by a batch.
type Bar interface {
	Add(int) error
	Close() error
}

// NewBarFn builds a bar for a batch of total records.
type NewBarFn func(total int, description string) Bar

type ProgressBar struct {
	*progressbar.ProgressBar
}

// NewRecordsBar renders to stderr so that records written to stdout are not
// mixed with the bar.
func NewRecordsBar(total int, description string) Bar {
	return newRecordsBar(os.Stderr, total, description)
}

func newRecordsBar(w io.Writer, total int, description string) *ProgressBar {
	return &ProgressBar{
		ProgressBar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetWidth(20),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetItsString("records"),
			progressbar.OptionShowIts(),
			progressbar.OptionSetDescription(description),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(w, "\n")
			}),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[yellow]=[reset]",
				SaucerHead:    "[yellow]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			})),
	}
}
