package dto

type UserResp struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserShortResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CategoryResp struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type EventFullResp struct {
	ID                int64         `json:"id"`
	Annotation        string        `json:"annotation"`
	Category          CategoryResp  `json:"category"`
	ConfirmedRequests int64         `json:"confirmedRequests"`
	CreatedOn         DateTime      `json:"createdOn"`
	Description       string        `json:"description"`
	EventDate         DateTime      `json:"eventDate"`
	Initiator         UserShortResp `json:"initiator"`
	Location          LocationDTO   `json:"location"`
	Paid              bool          `json:"paid"`
	ParticipantLimit  int           `json:"participantLimit"`
	PublishedOn       *DateTime     `json:"publishedOn"`
	RequestModeration bool          `json:"requestModeration"`
	State             string        `json:"state"`
	Title             string        `json:"title"`
	Views             int64         `json:"views"`
	Comments          int64         `json:"comments"`
}

type EventShortResp struct {
	ID                int64         `json:"id"`
	Annotation        string        `json:"annotation"`
	Category          CategoryResp  `json:"category"`
	ConfirmedRequests int64         `json:"confirmedRequests"`
	EventDate         DateTime      `json:"eventDate"`
	Initiator         UserShortResp `json:"initiator"`
	Paid              bool          `json:"paid"`
	Title             string        `json:"title"`
	Views             int64         `json:"views"`
	Comments          int64         `json:"comments"`
}

type RequestResp struct {
	ID        int64    `json:"id"`
	Event     int64    `json:"event"`
	Requester int64    `json:"requester"`
	Created   DateTime `json:"created"`
	Status    string   `json:"status"`
}

type StatusUpdateResp struct {
	ConfirmedRequests []RequestResp `json:"confirmedRequests"`
	RejectedRequests  []RequestResp `json:"rejectedRequests"`
}

type CompilationResp struct {
	ID     int64            `json:"id"`
	Pinned bool             `json:"pinned"`
	Title  string           `json:"title"`
	Events []EventShortResp `json:"events"`
}

type CommentResp struct {
	ID        int64         `json:"id"`
	Text      string        `json:"text"`
	Author    UserShortResp `json:"author"`
	EventID   int64         `json:"eventId"`
	PostedOn  DateTime      `json:"postedOn"`
	UpdatedOn *DateTime     `json:"updatedOn,omitempty"`
}
