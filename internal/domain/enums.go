package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeGIF  FileType = "gif"
	FileTypeBMP  FileType = "bmp"
	FileTypeTIFF FileType = "tiff"
	FileTypeWEBP FileType = "webp"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeGIF:  "image/gif",
	FileTypeBMP:  "image/bmp",
	FileTypeTIFF: "image/tiff",
	FileTypeWEBP: "image/webp",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"image/gif":       FileTypeGIF,
	"image/bmp":       FileTypeBMP,
	"image/tiff":      FileTypeTIFF,
	"image/webp":      FileTypeWEBP,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"gif":  FileTypeGIF,
	"bmp":  FileTypeBMP,
	"tif":  FileTypeTIFF,
	"tiff": FileTypeTIFF,
	"webp": FileTypeWEBP,
}

// DocumentType identifies which extraction pipeline handles a document.
type DocumentType string

const (
	DocumentTypePassport       DocumentType = "passport"
	DocumentTypeRepresentative DocumentType = "representative_form"
)

// ParseDocumentType accepts the canonical names plus the "g28" alias used by older clients.
func ParseDocumentType(s string) (DocumentType, error) {
	switch s {
	case string(DocumentTypePassport):
		return DocumentTypePassport, nil
	case string(DocumentTypeRepresentative), "representative", "g28", "g-28":
		return DocumentTypeRepresentative, nil
	default:
		return "", ErrUnknownDocumentType
	}
}

// Method labels the strategy that produced an extracted record.
type Method string

const (
	MethodMRZ            Method = "mrz"
	MethodManualMRZ      Method = "manual_mrz"
	MethodOCRPattern     Method = "ocr_pattern"
	MethodOCRLLM         Method = "ocr_llm"
	MethodVisionLLM      Method = "vision_llm"
	MethodSampleFallback Method = "sample_fallback"
	MethodNone           Method = "none"
)

// ShortLabel is the token used when composing merged method labels such as "mrz+llm".
func (m Method) ShortLabel() string {
	switch m {
	case MethodOCRLLM, MethodVisionLLM:
		return "llm"
	case MethodOCRPattern:
		return "ocr"
	case MethodManualMRZ:
		return "mrz"
	default:
		return string(m)
	}
}

// EligibilityType is the representative's basis for appearing.
type EligibilityType string

const (
	EligibilityAttorney       EligibilityType = "attorney"
	EligibilityRepresentative EligibilityType = "accredited_representative"
)

// RunStatus represents the outcome of an extraction run.
type RunStatus string

const (
	RunStatusSucceeded    RunStatus = "succeeded"
	RunStatusInconclusive RunStatus = "inconclusive"
	RunStatusFailed       RunStatus = "failed"
)
