package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/halloffame/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewStudent_Validate(t *testing.T) {
	Convey("Given a new student input", t, func() {
		valid := model.NewStudent{
			Name:        "John Doe",
			Score:       85,
			TeamName:    "Team Alpha",
			ImageURL:    "https://example.com/john.png",
			ProjectLink: "https://example.com/project1",
		}

		Convey("When all fields are valid", func() {
			Convey("Then validation should pass", func() {
				So(valid.Validate(), ShouldBeNil)
			})
		})

		Convey("When the name is missing", func() {
			in := valid
			in.Name = ""
			err := in.Validate()

			Convey("Then it should report the name field", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, model.ErrInvalidStudent), ShouldBeTrue)

				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Fields, ShouldHaveLength, 1)
				So(verr.Fields[0].Field, ShouldEqual, "name")
			})
		})

		Convey("When the score is out of range", func() {
			in := valid
			in.Score = 101
			err := in.Validate()

			Convey("Then it should report the score field", func() {
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Fields[0].Field, ShouldEqual, "score")
			})
		})

		Convey("When the project link is not a URL", func() {
			in := valid
			in.ProjectLink = "not a link"
			err := in.Validate()

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "project_link")
			})
		})

		Convey("When optional links are empty", func() {
			in := valid
			in.ImageURL = ""
			in.ProjectLink = ""

			Convey("Then validation should pass", func() {
				So(in.Validate(), ShouldBeNil)
			})
		})

		Convey("When the hackathon count is negative", func() {
			in := valid
			in.HackathonCount = -1

			Convey("Then validation should fail", func() {
				So(in.Validate(), ShouldNotBeNil)
			})
		})
	})
}

func TestNewStudent_Normalize(t *testing.T) {
	Convey("Given an input with padded name and team", t, func() {
		in := model.NewStudent{Name: "  Jane Smith ", TeamName: "\tTeam Beta  "}

		Convey("When normalizing", func() {
			out := in.Normalize()

			Convey("Then the identifying fields are trimmed", func() {
				So(out.Name, ShouldEqual, "Jane Smith")
				So(out.TeamName, ShouldEqual, "Team Beta")
			})
		})

		Convey("When building a stored record", func() {
			now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
			s := in.Normalize().Student("id-1", now)

			Convey("Then id and timestamps are assigned", func() {
				So(s.ID, ShouldEqual, "id-1")
				So(s.CreatedAt, ShouldEqual, now)
				So(s.UpdatedAt, ShouldEqual, now)
				So(s.Name, ShouldEqual, "Jane Smith")
			})
		})
	})
}

func TestStudentPatch_Apply(t *testing.T) {
	Convey("Given a stored student", t, func() {
		s := model.Student{ID: "1", Name: "Mike Johnson", Score: 78, TeamName: "Team Alpha"}

		Convey("When applying an empty patch", func() {
			p := model.StudentPatch{}

			Convey("Then nothing changes", func() {
				So(p.Empty(), ShouldBeTrue)
				n := p.Apply(s)
				So(n.Name, ShouldEqual, "Mike Johnson")
				So(n.Score, ShouldEqual, 78)
			})
		})

		Convey("When applying a score and team change", func() {
			score := 88
			team := "Team Gamma"
			p := model.StudentPatch{Score: &score, TeamName: &team}
			n := p.Apply(s)

			Convey("Then only those fields change", func() {
				So(p.Empty(), ShouldBeFalse)
				So(n.Score, ShouldEqual, 88)
				So(n.TeamName, ShouldEqual, "Team Gamma")
				So(n.Name, ShouldEqual, "Mike Johnson")
			})
		})
	})
}

func TestParseRole(t *testing.T) {
	Convey("Given role strings from the auth backend", t, func() {
		Convey("Then member aliases map to member", func() {
			for _, in := range []string{"", "member", "user", "authenticated", " Member "} {
				r, err := model.ParseRole(in)
				So(err, ShouldBeNil)
				So(r, ShouldEqual, model.RoleMember)
				So(r.IsAdmin(), ShouldBeFalse)
			}
		})

		Convey("And admin aliases map to admin", func() {
			for _, in := range []string{"admin", "ADMIN", "administrator"} {
				r, err := model.ParseRole(in)
				So(err, ShouldBeNil)
				So(r, ShouldEqual, model.RoleAdmin)
				So(r.IsAdmin(), ShouldBeTrue)
			}
		})

		Convey("And unknown roles are rejected", func() {
			_, err := model.ParseRole("superuser")
			So(errors.Is(err, model.ErrUnknownRole), ShouldBeTrue)
		})
	})
}
