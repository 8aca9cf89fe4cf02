package services

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/yigit/schooladmin/internal/app/models"
)

func sampleStudents() []models.Student {
	return []models.Student{
		{StudentID: 101, FirstName: "Ana", LastName: "Silva", Class: "1st year", Section: "A", RollNumber: "bca101", MobileNumber: "9876543210"},
		{StudentID: 102, FirstName: "Ben", LastName: "Okafor", Class: "2nd year", Section: "B", RollNumber: "bca202", MobileNumber: "5550001"},
		{StudentID: 203, FirstName: "Chloé", LastName: "Martin", Class: "1st year", Section: "C", RollNumber: "mca303", MobileNumber: "7771234"},
	}
}

func TestFilterBlankTermIsIdentity(t *testing.T) {
	students := sampleStudents()
	for _, term := range []string{"", "   ", "\t"} {
		got := FilterStudents(students, term)
		if !reflect.DeepEqual(got, students) {
			t.Fatalf("term %q: expected input unchanged", term)
		}
		if len(got) > 0 && &got[0] != &students[0] {
			t.Fatalf("term %q: expected the same slice back", term)
		}
	}
}

func TestFilterMatchesEachField(t *testing.T) {
	cases := []struct {
		term string
		want []int64
	}{
		{"ana silva", []int64{101}},
		{"  OKAFOR ", []int64{102}},
		{"10", []int64{101, 102}},
		{"bca", []int64{101, 102}},
		{"1st year c", []int64{203}},
		{"1234", []int64{203}},
		{"chloé", []int64{203}},
		{"nobody", nil},
	}

	for _, tc := range cases {
		got := FilterStudents(sampleStudents(), tc.term)
		var ids []int64
		for _, s := range got {
			ids = append(ids, s.StudentID)
		}
		if !reflect.DeepEqual(ids, tc.want) {
			t.Fatalf("term %q: expected %v, got %v", tc.term, tc.want, ids)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	students := sampleStudents()
	before := fmt.Sprint(students)
	_ = FilterStudents(students, "ben")
	if fmt.Sprint(students) != before {
		t.Fatalf("input was modified")
	}
}

func TestPageOfClampsAndSlices(t *testing.T) {
	students := make([]models.Student, 23)
	for i := range students {
		students[i].StudentID = int64(i + 1)
	}

	rows, w := PageOf(students, 3)
	if len(rows) != 3 || rows[0].StudentID != 21 {
		t.Fatalf("expected last 3 rows starting at 21, got %d rows", len(rows))
	}
	if w.ShowingFrom != 21 || w.ShowingTo != 23 || w.Total != 23 {
		t.Fatalf("unexpected window %+v", w)
	}

	rows, w = PageOf(students, 99)
	if w.Page != 3 || len(rows) != 3 {
		t.Fatalf("expected out-of-range page clamped to 3, got page %d with %d rows", w.Page, len(rows))
	}

	rows, w = PageOf(nil, 2)
	if len(rows) != 0 || w.Page != 1 || w.TotalPages != 1 || w.ShowingFrom != 0 {
		t.Fatalf("unexpected empty window %+v", w)
	}
}
