package meme

import "errors"

// Precondition and asset errors. Operations that return them leave the editor unchanged.
var (
	ErrNoImage          = errors.New("no image loaded")
	ErrNoLayers         = errors.New("no text layers")
	ErrNothingToExport  = errors.New("nothing to export")
	ErrDecode           = errors.New("cannot decode image")
	ErrTemplateNotFound = errors.New("template not found")
)

// Notice returns the message shown to the user for an error.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNothingToExport):
		return "Please add an image and at least one text box!"
	case errors.Is(err, ErrNoImage):
		return "Please upload an image first!"
	case errors.Is(err, ErrNoLayers):
		return "Please add at least one text box!"
	case errors.Is(err, ErrDecode):
		return "Failed to load image. Please try another file."
	case errors.Is(err, ErrTemplateNotFound):
		return "Failed to load template image. Please check if the file exists."
	}
	return err.Error()
}
