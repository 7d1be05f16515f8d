package models

// CommentThread — корневой комментарий и его прямые ответы.
// Оба уровня упорядочены по CreatedAt (ASC), при равенстве по ID.
type CommentThread struct {
	Comment
	Replies []Comment `json:"respuestas"`
}

// Permissions — что вызывающему разрешено в рамках ревизии.
type Permissions struct {
	CanComment bool `json:"puede_comentar"`
	CanResolve bool `json:"puede_resolver"`
}

// ListParams — параметры постраничной выдачи корневых веток.
// PageSize == 0 — вернуть все ветки.
type ListParams struct {
	PageSize  int32
	PageToken string
}

// CommentList — результат выдачи комментариев ревизии.
//   - Total — число видимых комментариев (корни + ответы) по всей ревизии,
//     а не только на текущей странице.
type CommentList struct {
	Comments      []CommentThread `json:"comments"`
	Permissions   Permissions     `json:"permisos"`
	AllowedTypes  []Visibility    `json:"tipos_permitidos"`
	Total         int             `json:"total"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

// TypeCounts — разбивка по tipo.
type TypeCounts struct {
	Public   int `json:"publico"`
	Private  int `json:"privado"`
	Internal int `json:"interno"`
}

// Stats — агрегаты по видимым вызывающему комментариям ревизии.
// Инварианты: Threads+Replies == Total, Active+Resolved == Total.
type Stats struct {
	Total    int        `json:"total"`
	ByType   TypeCounts `json:"por_tipo"`
	Active   int        `json:"activos"`
	Resolved int        `json:"resueltos"`
	Threads  int        `json:"hilos_principales"`
	Replies  int        `json:"respuestas"`
}

// Add учитывает комментарий в агрегатах.
func (s *Stats) Add(c Comment) {
	s.Total++

	switch c.Type {
	case VisibilityPublic:
		s.ByType.Public++
	case VisibilityPrivate:
		s.ByType.Private++
	case VisibilityInternal:
		s.ByType.Internal++
	}

	if c.State == StateResolved {
		s.Resolved++
	} else {
		s.Active++
	}

	if c.IsRoot() {
		s.Threads++
	} else {
		s.Replies++
	}
}
