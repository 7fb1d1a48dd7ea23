package model

// 通知类型
const (
	NotificationTypeHomework = "homework"
	NotificationTypeSession  = "session"
	NotificationTypeGeneral  = "general"
)

// ReferenceKind 通知引用的来源实体类型
type ReferenceKind string

const (
	RefNone     ReferenceKind = ""
	RefHomework ReferenceKind = "homework"
	RefSession  ReferenceKind = "session"
)

// Reference 通知来源引用：None | Homework(id) | Session(id)
// 只能通过构造函数创建，保证 Kind 与 ID 同时有效或同时为空
type Reference struct {
	kind ReferenceKind
	id   string
}

// NoReference 无来源引用
func NoReference() Reference { return Reference{} }

// HomeworkRef 引用一条作业
func HomeworkRef(id string) Reference { return Reference{kind: RefHomework, id: id} }

// SessionRef 引用一个会话
func SessionRef(id string) Reference { return Reference{kind: RefSession, id: id} }

// Kind 引用类型
func (r Reference) Kind() ReferenceKind { return r.kind }

// ID 被引用记录的 ID，RefNone 时为空
func (r Reference) ID() string { return r.id }

// IsNone 是否无引用
func (r Reference) IsNone() bool { return r.kind == RefNone }

// Notification 通知消息表 对应 notifications
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string  `gorm:"type:uuid;not null"                             json:"user_id"`
	Type           string  `gorm:"type:varchar(20);not null"                      json:"type"` // homework | session | general
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string  `gorm:"type:text;not null"                             json:"message"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	RelatedType    *string `gorm:"type:varchar(20)"                               json:"-"`
	RelatedID      *string `gorm:"type:uuid"                                      json:"-"`
	SoftDeleteModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// Reference 从存储列还原来源引用
func (n *Notification) Reference() Reference {
	if n.RelatedType == nil || n.RelatedID == nil {
		return NoReference()
	}
	switch ReferenceKind(*n.RelatedType) {
	case RefHomework:
		return HomeworkRef(*n.RelatedID)
	case RefSession:
		return SessionRef(*n.RelatedID)
	default:
		return NoReference()
	}
}

// SetReference 将来源引用写入存储列
func (n *Notification) SetReference(ref Reference) {
	if ref.IsNone() {
		n.RelatedType = nil
		n.RelatedID = nil
		return
	}
	kind := string(ref.kind)
	id := ref.id
	n.RelatedType = &kind
	n.RelatedID = &id
}

// OwnedBy 判断通知是否属于指定用户
func (n *Notification) OwnedBy(userID string) bool {
	return n.UserID == userID
}
