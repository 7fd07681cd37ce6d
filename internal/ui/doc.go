package ui

// Package ui contains the Fyne-based desktop user interface. It collects
// job parameters, starts and stops the download pipeline, and renders the
// pipeline's log, status, and progress events.
