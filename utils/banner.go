package utils

import (
	"time"

	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
)

var activeSpinner *spinner.Spinner

func DrawBanner(name string) {
	figure.NewFigure(name, "", true).Print()
}

func StartSpinner(suffix string) {
	StopSpinner()
	activeSpinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	activeSpinner.Suffix = " " + suffix
	activeSpinner.Start()
}

func StopSpinner() {
	if activeSpinner != nil {
		activeSpinner.Stop()
		activeSpinner = nil
	}
}
