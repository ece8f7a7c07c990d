package models

import "time"

type FileStatus string

const (
	FilePending   FileStatus = "Pending"
	FileProcessed FileStatus = "Processed"
)

type UploadedFile struct {
	ID         string     `bson:"_id" json:"id"`
	AdminID    string     `bson:"admin_id" json:"adminId"`
	FileName   string     `bson:"file_name" json:"fileName"`
	URL        string     `bson:"file_url" json:"fileUrl"`
	Status     FileStatus `bson:"status" json:"status"`
	UploadedAt time.Time  `bson:"uploaded_at" json:"uploadedAt"`
}

// RosterEntry is one candidate row read from an uploaded candidate list.
type RosterEntry struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
