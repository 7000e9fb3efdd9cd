package repo

// UserContextStore абстракция для хранения контекста пользователя (последний логин).
type UserContextStore interface {
	SaveLogin(username string) error
	LoadLogin() (string, error)
}

// Session — токен и контекст пользователя вместе; AuthFSStore реализует оба.
type Session interface {
	TokenStore
	UserContextStore
}
