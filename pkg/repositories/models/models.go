package models

type UserAccount struct {
	UID         string `json:"uid"`
	Username    string `json:"username"`
	LastPlaced  int64  `json:"last_placed"`
	LastDeleted int64  `json:"last_deleted"`
	Admin       bool   `json:"admin,omitempty"`
}

type HistoryEntry struct {
	Seq       int64   `json:"seq"`
	ChunkID   string  `json:"chunk_id"`
	Key       string  `json:"key"`
	Record    *string `json:"record,omitempty"`
	Timestamp int64   `json:"timestamp"`
	Username  string  `json:"username"`
}
