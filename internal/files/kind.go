package files

// Kind is the coarse category of an entry.
type Kind int

// Kinds in display order.
const (
	KindUnknown Kind = iota
	KindFolder
	KindDocument
	KindText
	KindImage
	KindAudio
	KindVideo
	KindArchive
	KindExecutable
	KindCode
	KindDatabase
	KindPackage
)

//nolint:gochecknoglobals // Lookup tables.
var (
	kindNames = [...]string{
		KindUnknown:    "Unknown",
		KindFolder:     "Folder",
		KindDocument:   "Document",
		KindText:       "Text",
		KindImage:      "Image",
		KindAudio:      "Audio",
		KindVideo:      "Video",
		KindArchive:    "Archive",
		KindExecutable: "Executable",
		KindCode:       "Code",
		KindDatabase:   "Database",
		KindPackage:    "Package",
	}

	extensionKinds = map[string]Kind{
		"pdf": KindDocument, "doc": KindDocument, "docx": KindDocument, "odt": KindDocument,
		"xls": KindDocument, "xlsx": KindDocument, "ppt": KindDocument, "pptx": KindDocument,
		"rtf": KindDocument, "epub": KindDocument,

		"txt": KindText, "md": KindText, "csv": KindText, "log": KindText, "rst": KindText,

		"png": KindImage, "jpg": KindImage, "jpeg": KindImage, "gif": KindImage,
		"webp": KindImage, "bmp": KindImage, "svg": KindImage, "heic": KindImage,
		"tiff": KindImage, "ico": KindImage,

		"mp3": KindAudio, "wav": KindAudio, "flac": KindAudio, "ogg": KindAudio,
		"m4a": KindAudio, "aac": KindAudio, "opus": KindAudio,

		"mp4": KindVideo, "mkv": KindVideo, "mov": KindVideo, "avi": KindVideo,
		"webm": KindVideo, "m4v": KindVideo,

		"zip": KindArchive, "tar": KindArchive, "gz": KindArchive, "tgz": KindArchive,
		"bz2": KindArchive, "xz": KindArchive, "7z": KindArchive, "rar": KindArchive,
		"zst": KindArchive,

		"exe": KindExecutable, "bin": KindExecutable, "sh": KindExecutable,
		"app": KindExecutable, "msi": KindExecutable,

		"go": KindCode, "rs": KindCode, "ts": KindCode, "tsx": KindCode, "js": KindCode,
		"py": KindCode, "c": KindCode, "h": KindCode, "cpp": KindCode, "java": KindCode,
		"rb": KindCode, "json": KindCode, "yaml": KindCode, "yml": KindCode,
		"toml": KindCode, "html": KindCode, "css": KindCode,

		"db": KindDatabase, "sqlite": KindDatabase, "sqlite3": KindDatabase,

		"deb": KindPackage, "rpm": KindPackage, "dmg": KindPackage, "pkg": KindPackage,
		"apk": KindPackage, "whl": KindPackage, "jar": KindPackage,
	}
)

// String returns the display name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Classify derives the kind of an entry from its extension.
func Classify(e Entry) Kind {
	if e.IsDir {
		return KindFolder
	}
	if k, ok := extensionKinds[e.Extension]; ok {
		return k
	}
	return KindUnknown
}
