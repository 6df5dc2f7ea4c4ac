package persistent

import (
	"gatherly/internal/entity"
	"gatherly/internal/model"
)

func ToNotificationModel(n *entity.Notification) *model.NotificationModel {
	m := &model.NotificationModel{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Kind:        string(n.Kind),
		Title:       n.Title,
		Body:        n.Body,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
	if n.EventID != "" {
		m.EventID = &n.EventID
	}
	if n.GroupID != "" {
		m.GroupID = &n.GroupID
	}
	return m
}

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	n := &entity.Notification{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		Kind:        entity.NotificationKind(m.Kind),
		Title:       m.Title,
		Body:        m.Body,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
	if m.EventID != nil {
		n.EventID = *m.EventID
	}
	if m.GroupID != nil {
		n.GroupID = *m.GroupID
	}
	return n
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}
	return &entity.User{
		ID:            m.ID,
		Email:         m.Email,
		FirstName:     m.FirstName,
		SecondName:    m.SecondName,
		Interests:     m.Interests,
		EmailVerified: m.EmailVerified,
		IsAdmin:       m.IsAdmin,
		IsBlocked:     m.IsBlocked,
		CreatedAt:     m.CreatedAt,
	}
}

func ToEventModel(e *entity.Event) *model.EventModel {
	m := &model.EventModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		DateTime:    e.DateTime,
		OrganizerID: e.OrganizerID,
		Categories:  e.Categories,
		Status:      string(e.Status),
		IsLocal:     e.IsLocal,
		IsFree:      e.IsFree,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,

		ParticipantsCount: e.ParticipantsCount,
	}
	if e.Location != nil {
		m.Location = &model.LocationJSON{Lat: e.Location.Lat, Lng: e.Location.Lng, Address: e.Location.Address}
	}
	if e.GroupID != "" {
		m.GroupID = &e.GroupID
	}
	if e.MaxParticipantsCount > 0 {
		m.MaxParticipantsCount = &e.MaxParticipantsCount
	}
	if e.Price > 0 {
		m.Price = &e.Price
	}
	if e.ImageURL != "" {
		m.ImageURL = &e.ImageURL
	}
	return m
}

func ToEventEntity(m *model.EventModel) *entity.Event {
	e := &entity.Event{
		ID:                m.ID,
		Title:             m.Title,
		Description:       m.Description,
		DateTime:          m.DateTime,
		OrganizerID:       m.OrganizerID,
		Categories:        m.Categories,
		Status:            entity.EventStatus(m.Status),
		IsLocal:           m.IsLocal,
		IsFree:            m.IsFree,
		ParticipantsCount: m.ParticipantsCount,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.Location != nil {
		e.Location = &entity.Location{Lat: m.Location.Lat, Lng: m.Location.Lng, Address: m.Location.Address}
	}
	if m.GroupID != nil {
		e.GroupID = *m.GroupID
	}
	if m.MaxParticipantsCount != nil {
		e.MaxParticipantsCount = *m.MaxParticipantsCount
	}
	if m.Price != nil {
		e.Price = *m.Price
	}
	if m.ImageURL != nil {
		e.ImageURL = *m.ImageURL
	}
	return e
}

func ToRegistrationEntity(m *model.RegistrationModel) *entity.Registration {
	return &entity.Registration{
		ID:      m.ID,
		EventID: m.EventID,
		UserID:  m.UserID,
		Status:  entity.RegistrationStatus(m.Status),
		User:    ToUserEntity(m.User),
	}
}

func ToGroupEntity(m *model.GroupModel) *entity.Group {
	g := &entity.Group{
		ID:        m.ID,
		Name:      m.Name,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, member := range m.Members {
		if member.User != nil {
			g.Members = append(g.Members, *ToUserEntity(member.User))
		}
	}
	return g
}

func ToGroupMemberEntity(m *model.GroupMemberModel) *entity.GroupMember {
	return &entity.GroupMember{
		ID:      m.ID,
		GroupID: m.GroupID,
		UserID:  m.UserID,
		User:    ToUserEntity(m.User),
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	c := &entity.Comment{
		ID:        m.ID,
		EventID:   m.EventID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.Rating != nil {
		c.Rating = *m.Rating
	}
	if m.User != nil {
		c.AuthorName = m.User.FirstName
	}
	return c
}

func ToBlacklistEntity(m *model.BlacklistModel) *entity.BlacklistEntry {
	return &entity.BlacklistEntry{
		ID:           m.ID,
		OrganizerID:  m.OrganizerID,
		BannedUserID: m.BannedUserID,
		BannedUser:   ToUserEntity(m.BannedUser),
	}
}

func ToRequestLogEntity(m *model.RequestLogModel) *entity.RequestLog {
	l := &entity.RequestLog{
		ID:        m.ID,
		Method:    m.Method,
		Path:      m.Path,
		Status:    m.Status,
		LatencyMs: m.LatencyMs,
		UserAgent: m.UserAgent,
		IP:        m.IP,
		CreatedAt: m.CreatedAt,
	}
	if m.UserID != nil {
		l.UserID = *m.UserID
	}
	return l
}
