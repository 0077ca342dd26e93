package service

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

// Transactor выполняет fn в одной транзакции. Вложенные вызовы присоединяются к внешней.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Хранилища. Реализованы в internal/repository.
// GetByID везде возвращает nil, nil, если запись не найдена.

type ListingStore interface {
	Create(ctx context.Context, l *model.Listing) error
	GetByID(ctx context.Context, id int64, listingType model.ListingType) (*model.Listing, error)
	SetStatus(ctx context.Context, id int64, listingType model.ListingType, status model.ListingStatus) error
	ListOpen(ctx context.Context, listingType model.ListingType, subjectName string) ([]*model.Listing, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id int64) (*model.Application, error)
	Exists(ctx context.Context, listingID int64, listingType model.ListingType, applicantID string) (bool, error)
	LockByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error)
	UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) (bool, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to model.ApplicationStatus) (bool, error)
	ListByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error)
	ListPendingByOwner(ctx context.Context, ownerID string) ([]*model.Application, error)
}

type AppointmentStore interface {
	Create(ctx context.Context, a *model.Appointment) error
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Appointment, error)
	ListByTutor(ctx context.Context, tutorID string) ([]*model.Appointment, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByTelegramChatID(ctx context.Context, chatID int64) (*model.User, error)
	SetTelegramChatID(ctx context.Context, userID string, chatID int64) error
	ClearTelegramChatID(ctx context.Context, chatID int64) error
	SetPoints(ctx context.Context, userID string, points int) error
}

type PointStore interface {
	Create(ctx context.Context, record *model.PointRecord) error
	SumByUser(ctx context.Context, userID string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]*model.PointRecord, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id int64, userID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type BlacklistStore interface {
	Exists(ctx context.Context, userID, blockedUserID string) (bool, error)
	Create(ctx context.Context, entry *model.BlacklistEntry) error
	Delete(ctx context.Context, userID, blockedUserID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*model.BlacklistEntry, error)
}

type ReviewStore interface {
	Create(ctx context.Context, rv *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	ListByReviewed(ctx context.Context, userID string) ([]*model.Review, error)
	ListByReviewer(ctx context.Context, userID string) ([]*model.Review, error)
	Summary(ctx context.Context, userID string) (*model.RatingSummary, error)
}

// Коллабораторы ядра: движки заявок и встреч видят только эти интерфейсы.

// UserDirectory источник снимка имени и телефона кандидата
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// BlacklistOracle отвечает, заблокировал ли blockerID пользователя blockedID
type BlacklistOracle interface {
	IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error)
}

// PointsLedger начисляет баллы и пересчитывает баланс
type PointsLedger interface {
	Grant(ctx context.Context, userID string, points int, pointType, description string) error
}

// NotificationSink кладёт уведомление во входящие пользователя
type NotificationSink interface {
	Send(ctx context.Context, n *model.Notification) error
}

// Materializer создаёт встречу из принятой заявки
type Materializer interface {
	MaterializeFromApplication(ctx context.Context, app *model.Application) (*model.Appointment, error)
}
