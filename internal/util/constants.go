package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 作业上传允许的 MIME 前缀
const (
	MimeImage = "image/"
	MimePDF   = "application/pdf"
	MimeText  = "text/plain"
	MimeZip   = "application/zip"
)

var AllowedSubmissionMimeTypes = []string{MimePDF, MimeImage, MimeText, MimeZip}

// 仪表盘"最近"列表的条数
const RecentListLimit = 5
