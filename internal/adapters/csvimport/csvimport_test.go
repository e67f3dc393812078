package csvimport_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/okian/halloffame/internal/adapters/csvimport"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTemplate(t *testing.T) {
	Convey("Given the import template", t, func() {
		Convey("Then it should hold the header row only", func() {
			So(string(csvimport.Template()), ShouldEqual, "name,image_url,score,team_name,project_link\n")
		})

		Convey("Then parsing it should yield nothing", func() {
			rows, skipped, err := csvimport.Parse(strings.NewReader(string(csvimport.Template())))
			So(err, ShouldBeNil)
			So(rows, ShouldBeEmpty)
			So(skipped, ShouldBeEmpty)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a CSV in template order", t, func() {
		input := "name,image_url,score,team_name,project_link\n" +
			"Asha,https://img/a.png,88,Alpha,https://github.com/a\n" +
			" Ben ,,91pts,Beta,\n" +
			"Chen,,abc,Alpha,\n"

		rows, skipped, err := csvimport.Parse(strings.NewReader(input))

		Convey("Then every row should be parsed", func() {
			So(err, ShouldBeNil)
			So(skipped, ShouldBeEmpty)
			So(len(rows), ShouldEqual, 3)
		})

		Convey("Then fields should be mapped and trimmed", func() {
			So(rows[0].Line, ShouldEqual, 2)
			So(rows[0].Student.Name, ShouldEqual, "Asha")
			So(rows[0].Student.ImageURL, ShouldEqual, "https://img/a.png")
			So(rows[0].Student.Score, ShouldEqual, 88)
			So(rows[0].Student.TeamName, ShouldEqual, "Alpha")
			So(rows[0].Student.ProjectLink, ShouldEqual, "https://github.com/a")
			So(rows[1].Student.Name, ShouldEqual, "Ben")
		})

		Convey("Then scores should use their leading integer or 0", func() {
			So(rows[1].Student.Score, ShouldEqual, 91)
			So(rows[2].Student.Score, ShouldEqual, 0)
		})
	})

	Convey("Given a CSV with reordered and extra columns", t, func() {
		input := "Team_Name,Score,College,Name,Hackathon_Count\n" +
			"Alpha,70,IIT,Asha,2\n"

		rows, _, err := csvimport.Parse(strings.NewReader(input))

		Convey("Then columns should be mapped by header name", func() {
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 1)
			So(rows[0].Student.Name, ShouldEqual, "Asha")
			So(rows[0].Student.TeamName, ShouldEqual, "Alpha")
			So(rows[0].Student.Score, ShouldEqual, 70)
			So(rows[0].Student.College, ShouldEqual, "IIT")
			So(rows[0].Student.HackathonCount, ShouldEqual, 2)
		})
	})

	Convey("Given a CSV whose header names nothing known", t, func() {
		input := "a,b,c,d,e\nAsha,,60,Alpha,\n"

		rows, _, err := csvimport.Parse(strings.NewReader(input))

		Convey("Then the template order should be used", func() {
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 1)
			So(rows[0].Student.Name, ShouldEqual, "Asha")
			So(rows[0].Student.Score, ShouldEqual, 60)
			So(rows[0].Student.TeamName, ShouldEqual, "Alpha")
		})
	})

	Convey("Given a CSV with malformed rows", t, func() {
		input := "name,image_url,score,team_name,project_link\n" +
			"Asha,,80,Alpha,\n" +
			"Short,row\n" +
			",,50,Beta,\n" +
			"\n" +
			"Dev,,70,Gamma,\n"

		rows, skipped, err := csvimport.Parse(strings.NewReader(input))

		Convey("Then bad rows should be skipped with their line", func() {
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
			So(rows[1].Student.Name, ShouldEqual, "Dev")
			So(len(skipped), ShouldEqual, 2)
			So(skipped[0].Line, ShouldEqual, 3)
			So(skipped[0].Reason, ShouldContainSubstring, "expected 5 columns")
			So(skipped[1].Line, ShouldEqual, 4)
			So(skipped[1].Error(), ShouldEqual, "line 4: name is empty")
		})
	})

	Convey("Given an empty input", t, func() {
		_, _, err := csvimport.Parse(strings.NewReader(""))

		Convey("Then ErrEmpty should be returned", func() {
			So(errors.Is(err, csvimport.ErrEmpty), ShouldBeTrue)
		})
	})

	Convey("Given a failing reader", t, func() {
		_, _, err := csvimport.Parse(iotest.ErrReader(errors.New("disk gone")))

		Convey("Then the read error should be returned", func() {
			So(errors.Is(err, csvimport.ErrRead), ShouldBeTrue)
		})
	})

	Convey("Given a row limit", t, func() {
		input := "name,score\nA,1\nB,2\nC,3\n"

		Convey("When the file stays within it", func() {
			rows, _, err := csvimport.Parse(strings.NewReader(input), csvimport.WithMaxRows(3))
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 3)
		})

		Convey("When the file exceeds it", func() {
			_, _, err := csvimport.Parse(strings.NewReader(input), csvimport.WithMaxRows(2))
			So(errors.Is(err, csvimport.ErrTooManyRows), ShouldBeTrue)
		})
	})
}

func TestLeadingInt(t *testing.T) {
	Convey("Given leading integer parsing", t, func() {
		cases := map[string]int{
			"42":     42,
			" 7 ":    7,
			"12abc":  12,
			"-5":     -5,
			"+3":     3,
			"abc":    0,
			"":       0,
			"3.9":    3,
			"-":      0,
			"100pts": 100,
		}
		for in, want := range cases {
			So(csvimport.LeadingInt(in), ShouldEqual, want)
		}
	})
}
