package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
	"voucher-topup-api/internal/pkg/lock"
)

const (
	nameMinLen = 3
	nameMaxLen = 225
	lockWait   = 30 * time.Second
)

var phonePattern = regexp.MustCompile(`^[0-9]{9,13}$`)

// ProfileInput holds the editable profile fields. Empty fields are left unchanged.
type ProfileInput struct {
	Name        string `form:"name" json:"name"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
}

// AvatarUpload is a new avatar image streamed from the request.
type AvatarUpload struct {
	Filename string
	Content  io.Reader
}

// avatarState tracks progress of an avatar replacement.
type avatarState int

const (
	avatarNoFile avatarState = iota
	avatarReceiving
	avatarCopied
	avatarRecordUpdated
	avatarOldDeleted
	avatarDone
	avatarFailed
)

func (s avatarState) String() string {
	switch s {
	case avatarNoFile:
		return "no_file"
	case avatarReceiving:
		return "receiving"
	case avatarCopied:
		return "copied"
	case avatarRecordUpdated:
		return "record_updated"
	case avatarOldDeleted:
		return "old_deleted"
	case avatarDone:
		return "done"
	case avatarFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProfileService reads and edits player profiles, including avatar replacement.
type ProfileService struct {
	players PlayerStore
	files   FileStore
	locks   *lock.KeyLock
	newName func() string
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(players PlayerStore, files FileStore, locks *lock.KeyLock) *ProfileService {
	if locks == nil {
		locks = lock.NewKeyLock()
	}
	return &ProfileService{
		players: players,
		files:   files,
		locks:   locks,
		newName: func() string { return uuid.NewString() },
	}
}

// Profile returns the public projection of p.
func (s *ProfileService) Profile(p *model.Player) model.PlayerProfile {
	return p.Profile()
}

// update builds the record update for in, rejecting malformed fields.
func (in ProfileInput) update() (model.ProfileUpdate, error) {
	var u model.ProfileUpdate
	v := apperr.NewValidation("Player validation failed")

	if name := sanitizeText(in.Name); name != "" {
		n := utf8.RuneCountInString(name)
		switch {
		case n < nameMinLen:
			v.Add("name", "minlength", fmt.Sprintf("name must be at least %d characters", nameMinLen), name)
		case n > nameMaxLen:
			v.Add("name", "maxlength", fmt.Sprintf("name must be at most %d characters", nameMaxLen), name)
		default:
			u.Name = &name
		}
	}

	if phone := sanitizeText(in.PhoneNumber); phone != "" {
		if phonePattern.MatchString(phone) {
			u.PhoneNumber = &phone
		} else {
			v.Add("phoneNumber", "regexp", "phone number must be 9 to 13 digits", phone)
		}
	}

	return u, v.Err()
}

// avatarName derives the stored file name from a generated id and the
// uploaded file's extension.
func avatarName(id, original string) string {
	return id + filepath.Ext(filepath.Base(original))
}

// EditProfile applies in to the player and, when upload is set, replaces the
// avatar. Avatar replacement is serialised per player and runs as:
//
//	receiving -> copied -> record updated -> old deleted -> done
//
// A failed copy leaves the record untouched and returns *apperr.TransferError.
// A failed record update removes the newly copied file.
func (s *ProfileService) EditProfile(ctx context.Context, playerID uuid.UUID, in ProfileInput, upload *AvatarUpload) (*model.PlayerSummary, error) {
	u, err := in.update()
	if err != nil {
		return nil, err
	}

	if upload == nil {
		log.Debug().Str("player_id", playerID.String()).Stringer("state", avatarNoFile).Msg("Profile update without avatar")
		p, err := s.players.UpdateProfile(ctx, playerID, u)
		if err != nil {
			return nil, translate(err)
		}
		summary := p.Summary()
		return &summary, nil
	}

	var summary model.PlayerSummary
	err = s.locks.WithLockContext(ctx, playerID.String(), lockWait, func() error {
		p, err := s.replaceAvatar(ctx, playerID, u, upload)
		if err != nil {
			return err
		}
		summary = p.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *ProfileService) replaceAvatar(ctx context.Context, playerID uuid.UUID, u model.ProfileUpdate, upload *AvatarUpload) (*model.Player, error) {
	name := avatarName(s.newName(), upload.Filename)
	logger := log.With().Str("player_id", playerID.String()).Str("avatar", name).Logger()

	state := avatarReceiving
	logger.Debug().Stringer("state", state).Msg("Avatar upload started")

	if _, err := s.files.Save(ctx, name, upload.Content); err != nil {
		state = avatarFailed
		logger.Warn().Err(err).Stringer("state", state).Msg("Avatar copy failed")
		return nil, &apperr.TransferError{Op: "copy", Err: err}
	}
	state = avatarCopied
	logger.Debug().Stringer("state", state).Msg("Avatar copied")

	current, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		s.discard(logger, name)
		return nil, translate(err)
	}

	u.Avatar = &name
	updated, err := s.players.UpdateProfile(ctx, playerID, u)
	if err != nil {
		s.discard(logger, name)
		return nil, translate(err)
	}
	state = avatarRecordUpdated
	logger.Debug().Stringer("state", state).Msg("Avatar record updated")

	if old := current.Avatar; old != "" && old != name {
		if err := s.removeOld(old); err != nil {
			logger.Warn().Err(err).Str("old_avatar", old).Msg("Failed to remove previous avatar")
		} else {
			state = avatarOldDeleted
			logger.Debug().Stringer("state", state).Str("old_avatar", old).Msg("Previous avatar removed")
		}
	}

	state = avatarDone
	logger.Info().Stringer("state", state).Msg("Avatar replaced")
	return updated, nil
}

func (s *ProfileService) removeOld(name string) error {
	exists, err := s.files.Exists(name)
	if err != nil || !exists {
		return err
	}
	return s.files.Remove(name)
}

// discard is the compensating step for a copy whose record update failed.
func (s *ProfileService) discard(logger zerolog.Logger, name string) {
	if err := s.files.Remove(name); err != nil {
		logger.Error().Err(err).Msg("Failed to remove orphaned avatar")
		return
	}
	logger.Warn().Stringer("state", avatarFailed).Msg("Record update failed, new avatar removed")
}
