package organizer

// typeFolders maps a lowercase extension to its target folder
var typeFolders = map[string]string{
	// Documents
	".pdf":  "Documents/PDFs",
	".doc":  "Documents/Word",
	".docx": "Documents/Word",
	".txt":  "Documents/Text",
	".md":   "Documents/Markdown",
	".rtf":  "Documents/Text",
	// Spreadsheets
	".xls":  "Documents/Spreadsheets",
	".xlsx": "Documents/Spreadsheets",
	".csv":  "Documents/Spreadsheets",
	// Presentations
	".ppt":  "Documents/Presentations",
	".pptx": "Documents/Presentations",
	// Images
	".jpg":  "Images",
	".jpeg": "Images",
	".png":  "Images",
	".gif":  "Images",
	".bmp":  "Images",
	".svg":  "Images",
	".webp": "Images",
	// Videos
	".mp4":  "Videos",
	".avi":  "Videos",
	".mkv":  "Videos",
	".mov":  "Videos",
	".wmv":  "Videos",
	".webm": "Videos",
	// Audio
	".mp3":  "Audio",
	".wav":  "Audio",
	".flac": "Audio",
	".aac":  "Audio",
	".m4a":  "Audio",
	// Archives
	".zip": "Archives",
	".rar": "Archives",
	".7z":  "Archives",
	".tar": "Archives",
	".gz":  "Archives",
	// Code
	".py":   "Code/Python",
	".js":   "Code/JavaScript",
	".ts":   "Code/TypeScript",
	".java": "Code/Java",
	".cpp":  "Code/C++",
	".c":    "Code/C",
	".go":   "Code/Go",
	".rs":   "Code/Rust",
	".html": "Code/Web",
	".css":  "Code/Web",
	// Executables
	".exe": "Programs",
	".msi": "Programs",
	".dmg": "Programs",
	".app": "Programs",
	// Data
	".json": "Data",
	".xml":  "Data",
	".yaml": "Data",
	".yml":  "Data",
}

// projectMarkers are the files whose presence promotes a directory to a
// learned project
var projectMarkers = []string{
	"package.json",
	"pyproject.toml",
	"Cargo.toml",
	"pom.xml",
	"build.gradle",
	"go.mod",
	".git",
}

// screenshotKeywords are substrings that mark a file name as a
// screenshot, including localized variants
var screenshotKeywords = []string{
	"screenshot", "screen shot", "capture",
	"snip", "截图", "屏幕截图",
}
