package ui

import (
	"context"
	"fmt"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tunegrab/tunegrab/internal/config"
	"github.com/tunegrab/tunegrab/internal/convert"
	"github.com/tunegrab/tunegrab/internal/download"
	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// UI constants
const (
	URLPlaceholder = "Paste a YouTube playlist or video URL"
	MaxLogLines    = 500
)

// RootUI is the main window: job parameters on top, progress and log below.
// It implements download.Observer; pipeline events arrive from worker
// goroutines and are marshalled onto the UI thread with fyne.Do.
type RootUI struct {
	window fyne.Window

	urlEntry          *widget.Entry
	dirLabel          *widget.Label
	qualitySelect     *widget.Select
	skipExistingCheck *widget.Check
	startBtn          *widget.Button
	stopBtn           *widget.Button
	statusLabel       *widget.Label
	progressBar       *widget.ProgressBar
	logList           *widget.List
	logData           binding.StringList

	service   *download.Service
	converter *convert.Service
	store     *config.Store
	settings  config.Settings

	runMu   sync.Mutex
	running bool
}

// NewRootUI creates and wires the main UI
func NewRootUI(window fyne.Window, service *download.Service, converter *convert.Service, store *config.Store) *RootUI {
	ui := &RootUI{
		window:    window,
		service:   service,
		converter: converter,
		store:     store,
		settings:  store.Load(),
		logData:   binding.NewStringList(),
	}

	service.SetObserver(ui)
	ui.buildLayout()
	return ui
}

// buildLayout assembles the widget tree and sets the window content
func (ui *RootUI) buildLayout() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(URLPlaceholder)
	ui.urlEntry.SetText(ui.settings.LastURL)

	ui.dirLabel = widget.NewLabel(ui.settings.OutputDir)
	ui.dirLabel.Truncation = fyne.TextTruncateEllipsis
	browseBtn := widget.NewButton("Browse...", ui.onBrowseDirectory)
	openBtn := widget.NewButton("Open Folder", ui.onOpenFolder)
	dirRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, openBtn), ui.dirLabel)

	qualityLabels := make([]string, 0, len(model.QualityOptions()))
	for _, q := range model.QualityOptions() {
		qualityLabels = append(qualityLabels, q.Label())
	}
	ui.qualitySelect = widget.NewSelect(qualityLabels, nil)
	ui.qualitySelect.SetSelected(ui.settings.Quality.Label())

	ui.skipExistingCheck = widget.NewCheck("Skip existing files", nil)
	ui.skipExistingCheck.SetChecked(ui.settings.SkipExisting)

	ui.startBtn = widget.NewButton("Download MP3s", ui.onStart)
	ui.startBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton("Stop", ui.onStop)
	ui.stopBtn.Disable()
	convertBtn := widget.NewButton("Convert Local File...", ui.onConvertFile)

	ui.statusLabel = widget.NewLabel("Ready")
	ui.progressBar = widget.NewProgressBar()

	ui.logList = widget.NewListWithData(ui.logData,
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)

	controls := container.NewVBox(
		ui.urlEntry,
		dirRow,
		container.NewHBox(widget.NewLabel("Quality:"), ui.qualitySelect, ui.skipExistingCheck),
		container.NewHBox(ui.startBtn, ui.stopBtn, convertBtn),
		ui.statusLabel,
		ui.progressBar,
	)

	ui.window.SetContent(container.NewBorder(controls, nil, nil, nil, ui.logList))
}

// OnLog implements download.Observer
func (ui *RootUI) OnLog(line string) {
	fyne.Do(func() {
		ui.logData.Append(line)
		if lines, err := ui.logData.Get(); err == nil && len(lines) > MaxLogLines {
			ui.logData.Set(lines[len(lines)-MaxLogLines:])
		}
		ui.logList.ScrollToBottom()
	})
}

// OnStatus implements download.Observer
func (ui *RootUI) OnStatus(text string) {
	fyne.Do(func() {
		ui.statusLabel.SetText(text)
	})
}

// OnProgress implements download.Observer
func (ui *RootUI) OnProgress(done, total int) {
	fyne.Do(func() {
		if total > 0 {
			ui.progressBar.SetValue(float64(done) / float64(total))
		} else {
			ui.progressBar.SetValue(0)
		}
	})
}

// onStart validates the inputs and launches the pipeline in the background
func (ui *RootUI) onStart() {
	url := ui.urlEntry.Text
	if !platform.IsSupportedURL(url) {
		dialog.ShowError(fmt.Errorf("please enter a valid http(s) URL"), ui.window)
		return
	}

	ui.runMu.Lock()
	if ui.running {
		ui.runMu.Unlock()
		return
	}
	ui.running = true
	ui.runMu.Unlock()

	ui.settings.LastURL = url
	ui.settings.Quality = ui.selectedQuality()
	ui.settings.SkipExisting = ui.skipExistingCheck.Checked

	job := model.NewJob(url, ui.settings.OutputDir, ui.settings.Quality)
	job.SkipExisting = ui.settings.SkipExisting
	job.Workers = ui.settings.Workers

	ui.startBtn.Disable()
	ui.stopBtn.Enable()
	ui.progressBar.SetValue(0)

	go ui.runJob(job)
}

// runJob executes one job off the UI thread
func (ui *RootUI) runJob(job *model.Job) {
	// authenticated cookies let age-restricted items through
	if browser, ok := platform.FindCookieBrowser(platform.CookieDomain); ok {
		job.CookieBrowser = browser
		ui.OnLog(fmt.Sprintf("Using cookies from %s browser", browser))
	} else {
		ui.OnLog("No browser cookies found; age-restricted videos will be skipped")
	}

	_, err := ui.service.Run(context.Background(), job)

	fyne.Do(func() {
		ui.startBtn.Enable()
		ui.stopBtn.Disable()
		ui.runMu.Lock()
		ui.running = false
		ui.runMu.Unlock()

		if err != nil {
			ui.statusLabel.SetText("Error")
			dialog.ShowError(err, ui.window)
			return
		}
		if !job.Cancelled() {
			if saveErr := ui.store.Save(ui.settings); saveErr != nil {
				log.Printf("Could not save settings: %v", saveErr)
			}
		}
	})
}

// onStop requests cooperative cancellation
func (ui *RootUI) onStop() {
	ui.stopBtn.Disable()
	ui.statusLabel.SetText("Stopping...")
	ui.service.Stop()
}

// onBrowseDirectory opens the output directory chooser
func (ui *RootUI) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.settings.OutputDir = uri.Path()
		ui.dirLabel.SetText(uri.Path())
	}, ui.window)
}

// onOpenFolder reveals the output directory in the system file manager
func (ui *RootUI) onOpenFolder() {
	if err := platform.OpenFolder(ui.settings.OutputDir); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

// onConvertFile converts a local media file to MP3 with the current quality
func (ui *RootUI) onConvertFile() {
	dialog.ShowFileOpen(func(uri fyne.URIReadCloser, err error) {
		if err != nil || uri == nil {
			return
		}
		inputPath := uri.URI().Path()
		uri.Close()

		quality := ui.selectedQuality()
		go func() {
			ui.OnLog(fmt.Sprintf("Converting: %s", inputPath))
			outputPath, convErr := ui.converter.Convert(context.Background(), inputPath, quality)
			if convErr != nil {
				ui.OnLog(fmt.Sprintf("✗ Conversion failed: %v", convErr))
				return
			}
			ui.OnLog(fmt.Sprintf("✓ Converted: %s", outputPath))
		}()
	}, ui.window)
}

// selectedQuality maps the select widget back to a quality value
func (ui *RootUI) selectedQuality() model.Quality {
	for _, q := range model.QualityOptions() {
		if q.Label() == ui.qualitySelect.Selected {
			return q
		}
	}
	return model.DefaultQuality
}
