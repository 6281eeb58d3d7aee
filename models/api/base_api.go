package apimodels

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Status  string      `json:"status"`            // fail/success
	Message string      `json:"message,omitempty"` // error message
	Data    interface{} `json:"data,omitempty"`    // payload
}

func (r Response) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// ScrollerResponse is a page of a directory listing.
type ScrollerResponse struct {
	Response
	RowCount int64 `json:"rowCount"` // total rows matching the filter
}

func NewError(message string) Response {
	return Response{Status: StatusFail, Message: message}
}

func NewResponse(data interface{}) Response {
	return Response{Status: StatusSuccess, Data: data}
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{Response: NewResponse(data), RowCount: rowCount}
}
