package main

import (
	"log/slog"

	"github.com/gotk3/gotk3/gtk"
)

// NewErrorDialog shows err in a modal dialog and returns once it is closed.
func NewErrorDialog(parent gtk.IWindow, err error) {
	dialog := gtk.MessageDialogNew(
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT|gtk.DIALOG_MODAL,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s",
		err.Error(),
	)

	messageArea, areaErr := dialog.GetMessageArea()
	if areaErr != nil {
		slog.Warn("error dialog message area", "err", areaErr)
	} else {
		messageArea.GetChildren().Foreach(func(item interface{}) {
			if widget, ok := item.(*gtk.Widget); ok {
				l, err := gtk.WidgetToLabel(widget)
				if err != nil {
					return
				}

				l.SetSelectable(true)
			}
		})
	}

	dialog.SetTitle("GLMandel Error")
	dialog.SetKeepAbove(true)
	dialog.Run()
	dialog.Destroy()
}
