package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okian/halloffame/internal/adapters/auth"
	"github.com/okian/halloffame/internal/adapters/repository"
	"github.com/okian/halloffame/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const secret = "test-secret"

type brokenProfiles struct{}

func (brokenProfiles) Profile(context.Context, string) (model.Profile, error) {
	return model.Profile{}, errors.New("db down")
}

func TestBearerToken(t *testing.T) {
	Convey("Given Authorization header values", t, func() {
		tok, err := auth.BearerToken("Bearer abc.def")
		So(err, ShouldBeNil)
		So(tok, ShouldEqual, "abc.def")

		tok, err = auth.BearerToken("bearer   xyz ")
		So(err, ShouldBeNil)
		So(tok, ShouldEqual, "xyz")

		for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc", "abc"} {
			_, err := auth.BearerToken(h)
			So(errors.Is(err, auth.ErrMissingToken), ShouldBeTrue)
		}
	})
}

func TestAuthenticator(t *testing.T) {
	Convey("Given an authenticator backed by a profile store", t, func() {
		ctx := context.Background()
		now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
		store := repository.NewMemoryStore()
		So(store.UpsertProfile(ctx, model.Profile{ID: "boss", Email: "boss@example.com", Role: model.RoleAdmin}), ShouldBeNil)

		a, err := auth.New(secret, store, auth.WithClock(func() time.Time { return now }))
		So(err, ShouldBeNil)

		Convey("When an admin's token is verified", func() {
			tok, err := a.IssueToken("boss", "", time.Hour)
			So(err, ShouldBeNil)
			sess, err := a.Authenticate(ctx, "Bearer "+tok)

			Convey("Then the session should carry the stored role and email", func() {
				So(err, ShouldBeNil)
				So(sess.UserID, ShouldEqual, "boss")
				So(sess.Email, ShouldEqual, "boss@example.com")
				So(sess.Role, ShouldEqual, model.RoleAdmin)
				So(sess.IsAdmin(), ShouldBeTrue)
			})
		})

		Convey("When a user without a profile is verified", func() {
			tok, err := a.IssueToken("newbie", "new@example.com", time.Hour)
			So(err, ShouldBeNil)
			sess, err := a.Verify(ctx, tok)

			Convey("Then the session should be a member", func() {
				So(err, ShouldBeNil)
				So(sess.Role, ShouldEqual, model.RoleMember)
				So(sess.Email, ShouldEqual, "new@example.com")
				So(sess.IsAdmin(), ShouldBeFalse)
			})
		})

		Convey("When the token has expired", func() {
			tok, err := auth.IssueToken([]byte(secret), "boss", "", time.Minute, auth.WithTokenTime(now.Add(-time.Hour)))
			So(err, ShouldBeNil)
			_, err = a.Verify(ctx, tok)

			Convey("Then it should be invalid", func() {
				So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)
				So(errors.Is(err, jwt.ErrTokenExpired), ShouldBeTrue)
			})
		})

		Convey("When the token is signed with another secret", func() {
			tok, err := auth.IssueToken([]byte("other"), "boss", "", time.Hour, auth.WithTokenTime(now))
			So(err, ShouldBeNil)
			_, err = a.Verify(ctx, tok)

			Convey("Then it should be invalid", func() {
				So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)
			})
		})

		Convey("When the token has no subject", func() {
			tok, err := auth.IssueToken([]byte(secret), "", "", time.Hour, auth.WithTokenTime(now))
			So(err, ShouldBeNil)
			_, err = a.Verify(ctx, tok)

			Convey("Then it should be invalid", func() {
				So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)
			})
		})

		Convey("When the token is garbage or missing", func() {
			_, err := a.Verify(ctx, "not-a-jwt")
			So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)

			_, err = a.Authenticate(ctx, "")
			So(errors.Is(err, auth.ErrMissingToken), ShouldBeTrue)
		})
	})

	Convey("Given an authenticator requiring an audience", t, func() {
		ctx := context.Background()
		now := time.Now()
		a, err := auth.New(secret, nil, auth.WithAudience("hof"), auth.WithIssuer("hof-auth"))
		So(err, ShouldBeNil)

		Convey("When a token for that audience is verified", func() {
			tok, err := a.IssueToken("u1", "", time.Hour)
			So(err, ShouldBeNil)
			_, err = a.Verify(ctx, tok)

			Convey("Then it should pass", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When a token for another audience is verified", func() {
			tok, err := auth.IssueToken([]byte(secret), "u1", "", time.Hour,
				auth.WithTokenTime(now), auth.WithTokenAudience("other"), auth.WithTokenIssuer("hof-auth"))
			So(err, ShouldBeNil)
			_, err = a.Verify(ctx, tok)

			Convey("Then it should fail", func() {
				So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)
			})
		})
	})

	Convey("Given a failing profile source", t, func() {
		a, err := auth.New(secret, brokenProfiles{})
		So(err, ShouldBeNil)
		tok, err := a.IssueToken("u1", "", time.Hour)
		So(err, ShouldBeNil)

		Convey("Then verification should surface the error", func() {
			_, err := a.Verify(context.Background(), tok)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, auth.ErrInvalidToken), ShouldBeFalse)
		})
	})

	Convey("Given no secret", t, func() {
		_, err := auth.New("", nil)

		Convey("Then construction should fail", func() {
			So(errors.Is(err, auth.ErrNoSecret), ShouldBeTrue)
		})
	})
}
