package dto

// SearchResultData 综合搜索结果
type SearchResultData struct {
	Query    string        `json:"query"`
	Videos   []VideoInfo   `json:"videos"`
	Channels []ChannelInfo `json:"channels"`
}
