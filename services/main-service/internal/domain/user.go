package domain

type User struct {
	ID    int64
	Name  string
	Email string
}

type UserShort struct {
	ID   int64
	Name string
}

func (u User) Short() UserShort { return UserShort{ID: u.ID, Name: u.Name} }
