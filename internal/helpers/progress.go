package helpers

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

func CreateProgressBar(total int, label string) ProgressBar {
	return createProgressBar(progressbar.Default(int64(total), label))
}

// CreateProgressBarTo renders into w instead of stderr.
func CreateProgressBarTo(w io.Writer, total int, label string) ProgressBar {
	return createProgressBar(progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("games"),
	))
}

func createProgressBar(p *progressbar.ProgressBar) ProgressBar {
	return ProgressBar{
		func(i int) {
			_ = p.Set(i)
		}, func(i int) {
			_ = p.Add(i)
		}, func() {
			_ = p.Close()
		},
	}
}

func NoProgressBar() ProgressBar {
	return ProgressBar{func(int) {}, func(int) {}, func() {}}
}
