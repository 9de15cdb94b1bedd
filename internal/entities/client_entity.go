package entities

// Client - запись реестра клиентов (внешний источник, только чтение).
type Client struct {
	ID            uint64 `db:"id"`
	SourceChannel string `db:"source_channel"`
}
