package errors

import "errors"

var (
	// Codec errors 📦
	ErrInsufficientFileSize = errors.New("❌ insufficient file size")
	ErrStructSizeMismatch   = errors.New("❌ magic struct size mismatch")
	ErrTextPointerOverflow  = errors.New("❌ text pointer does not fit in 16 bits")
	ErrInvalidImportSize    = errors.New("❌ import file size is not a multiple of the magic struct size")

	// Kernel errors 🗂️
	ErrMagicCountMismatch = errors.New("❌ magic record count mismatch")
	ErrMagicIdMismatch    = errors.New("❌ magic id does not match its kernel position")
	ErrNotLoaded          = errors.New("❌ no kernel loaded")

	// Text errors 🔤
	ErrEncodingIncompatible         = errors.New("❌ text is not encodable")
	ErrMissingMandatoryLanguageFile = errors.New("❌ mandatory English resource file missing")
	ErrUnknownLanguage              = errors.New("❌ unknown language")
	ErrTextTooLong                  = errors.New("❌ text does not fit its slot")
	ErrMissingEnglishTranslation    = errors.New("❌ English translation missing or empty")

	// Export errors 🚀
	ErrEmptyExportSet = errors.New("❌ no spells to export")
	ErrExportFailed   = errors.New("❌ export failed")
)
