// internal/app/store/registry/seed.go
package registry

import (
	"fmt"

	"github.com/mergington/activities/internal/app/store/docstore"
	"github.com/mergington/activities/internal/app/system/authutil"
)

// Seed payload. Activities are keyed by name, teachers by username, students
// by school email. Passwords appear here in clear form only; the payload
// builders hash them before anything is inserted.
//
// Teacher passwords are hashed with the legacy deterministic scheme because
// the teacher login path verifies by direct digest comparison (those accounts
// predate the Argon2id rollout). Student passwords use Argon2id.

func seedActivities() ([]docstore.Document, error) {
	docs := make([]docstore.Document, 0, len(initialActivities))
	for _, a := range initialActivities {
		doc := a.doc.Clone()
		doc[docstore.KeyField] = a.name
		docs = append(docs, doc)
	}
	return docs, nil
}

func seedTeachers() ([]docstore.Document, error) {
	docs := make([]docstore.Document, 0, len(initialTeachers))
	for _, t := range initialTeachers {
		docs = append(docs, docstore.Document{
			docstore.KeyField: t.username,
			"display_name":    t.displayName,
			"password":        authutil.LegacyHashPassword(t.password),
			"role":            t.role,
		})
	}
	return docs, nil
}

func seedStudents() ([]docstore.Document, error) {
	docs := make([]docstore.Document, 0, len(initialStudents))
	for _, s := range initialStudents {
		hash, err := authutil.HashPassword(s.password)
		if err != nil {
			return nil, fmt.Errorf("hash seed password for %s: %w", s.email, err)
		}
		docs = append(docs, docstore.Document{
			docstore.KeyField: s.email,
			"first_name":      s.firstName,
			"last_name":       s.lastName,
			"password":        hash,
			"grade":           s.grade,
			"phone":           s.phone,
		})
	}
	return docs, nil
}

type seedActivity struct {
	name string
	doc  docstore.Document
}

func activity(name, description, schedule string, days []string, start, end string, max int, participants []string) seedActivity {
	return seedActivity{
		name: name,
		doc: docstore.Document{
			"description": description,
			"schedule":    schedule,
			"schedule_details": docstore.Document{
				"days":       days,
				"start_time": start,
				"end_time":   end,
			},
			"max_participants": max,
			"participants":     participants,
		},
	}
}

var initialActivities = []seedActivity{
	activity("Chess Club",
		"Learn strategies and compete in chess tournaments",
		"Mondays and Fridays, 3:15 PM - 4:45 PM",
		[]string{"Monday", "Friday"}, "15:15", "16:45", 12,
		[]string{"alex@mergington.edu", "sarah@mergington.edu"}),
	activity("Programming Class",
		"Learn programming fundamentals and build software projects",
		"Tuesdays and Thursdays, 7:00 AM - 8:00 AM",
		[]string{"Tuesday", "Thursday"}, "07:00", "08:00", 20,
		[]string{"emma@mergington.edu", "sophia@mergington.edu"}),
	activity("Morning Fitness",
		"Early morning physical training and exercises",
		"Mondays, Wednesdays, Fridays, 6:30 AM - 7:45 AM",
		[]string{"Monday", "Wednesday", "Friday"}, "06:30", "07:45", 30,
		[]string{"john@mergington.edu", "olivia@mergington.edu"}),
	activity("Soccer Team",
		"Join the school soccer team and compete in matches",
		"Tuesdays and Thursdays, 3:30 PM - 5:30 PM",
		[]string{"Tuesday", "Thursday"}, "15:30", "17:30", 22,
		[]string{"liam@mergington.edu", "noah@mergington.edu"}),
	activity("Basketball Team",
		"Practice and compete in basketball tournaments",
		"Wednesdays and Fridays, 3:15 PM - 5:00 PM",
		[]string{"Wednesday", "Friday"}, "15:15", "17:00", 15,
		[]string{"michael@mergington.edu", "daniel@mergington.edu"}),
	activity("Math Club",
		"Solve challenging problems and prepare for math competitions",
		"Tuesdays, 7:15 AM - 8:00 AM",
		[]string{"Tuesday"}, "07:15", "08:00", 10,
		[]string{"james@mergington.edu", "benjamin@mergington.edu"}),
	activity("Debate Team",
		"Develop public speaking and argumentation skills",
		"Fridays, 3:30 PM - 5:30 PM",
		[]string{"Friday"}, "15:30", "17:30", 12,
		[]string{"ava@mergington.edu", "mia@mergington.edu"}),
	activity("Art Club",
		"Explore various art techniques and create masterpieces",
		"Thursdays, 3:15 PM - 5:00 PM",
		[]string{"Thursday"}, "15:15", "17:00", 15,
		[]string{"amelia@mergington.edu", "harper@mergington.edu"}),
	activity("Drama Club",
		"Act, direct, and produce plays and performances",
		"Mondays and Wednesdays, 3:30 PM - 5:30 PM",
		[]string{"Monday", "Wednesday"}, "15:30", "17:30", 20,
		[]string{"ella@mergington.edu", "scarlett@mergington.edu"}),
	activity("Weekend Robotics Workshop",
		"Build and program robots in our state-of-the-art workshop",
		"Saturdays, 10:00 AM - 2:00 PM",
		[]string{"Saturday"}, "10:00", "14:00", 15,
		[]string{"ethan@mergington.edu", "oliver@mergington.edu"}),
	activity("Science Olympiad",
		"Weekend science competition preparation for regional and state events",
		"Saturdays, 1:00 PM - 4:00 PM",
		[]string{"Saturday"}, "13:00", "16:00", 18,
		[]string{"isabella@mergington.edu", "lucas@mergington.edu"}),
	activity("Sunday Chess Tournament",
		"Weekly tournament for serious chess players with rankings",
		"Sundays, 2:00 PM - 5:00 PM",
		[]string{"Sunday"}, "14:00", "17:00", 16,
		[]string{"william@mergington.edu", "jacob@mergington.edu"}),
	activity("Manga Maniacs",
		"Dive into epic adventures, supernatural powers, and unforgettable characters! Discover the incredible world of Japanese manga where every page bursts with stunning art and captivating storytelling. From shonen battles to slice-of-life moments, unleash your imagination and connect with fellow manga enthusiasts!",
		"Tuesdays, 7:00 PM - 8:00 PM",
		[]string{"Tuesday"}, "19:00", "20:00", 15,
		[]string{}),
}

type seedTeacher struct {
	username    string
	displayName string
	password    string
	role        string
}

var initialTeachers = []seedTeacher{
	{username: "mrodriguez", displayName: "Ms. Rodriguez", password: "art123", role: "teacher"},
	{username: "mchen", displayName: "Mr. Chen", password: "chess456", role: "teacher"},
	{username: "principal", displayName: "Principal Martinez", password: "admin789", role: "admin"},
}

type seedStudent struct {
	email     string
	firstName string
	lastName  string
	password  string
	grade     string
	phone     string
}

var initialStudents = []seedStudent{
	{email: "alex@mergington.edu", firstName: "Alex", lastName: "Smith", password: "student123", grade: "10", phone: "555-0101"},
	{email: "sarah@mergington.edu", firstName: "Sarah", lastName: "Johnson", password: "student456", grade: "11", phone: "555-0102"},
	{email: "emma@mergington.edu", firstName: "Emma", lastName: "Williams", password: "student789", grade: "12", phone: "555-0103"},
}
