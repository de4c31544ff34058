// Package seed provides demo registration data and a local stand-in for the
// spreadsheet web app.
package seed

import (
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/sheets"
)

// DefaultData returns the demo categories, activities and teams
func DefaultData() *sheets.Snapshot {
	return &sheets.Snapshot{
		Categories: []models.Category{
			{ID: "cat-1", Name: "วิชาการ"},
			{ID: "cat-2", Name: "เทคโนโลยี"},
			{ID: "cat-3", Name: "ศิลปะ"},
			{ID: "cat-4", Name: "กีฬา"},
		},
		Activities: []models.Activity{
			{
				ID: "act-1", CategoryID: "cat-1", Name: "แข่งขันทักษะคณิตศาสตร์",
				Levels: []string{"ป.4-6", "ม.1-3"}, Mode: models.ModeOnsite,
				TeamComposition: models.TeamComposition{Teachers: 1, Students: 2},
			},
			{
				ID: "act-2", CategoryID: "cat-2", Name: "การแข่งขันเขียนโปรแกรม",
				Levels: []string{"ม.1-3", "ม.4-6"}, Mode: models.ModeOnline,
				TeamComposition: models.TeamComposition{Teachers: 1, Students: 3},
			},
			{
				ID: "act-3", CategoryID: "cat-3", Name: "ประกวดวาดภาพระบายสี",
				Levels: []string{"ป.1-3", "ป.4-6"}, Mode: models.ModeHybrid,
				TeamComposition: models.TeamComposition{Teachers: 1, Students: 1},
			},
			{
				ID: "act-4", CategoryID: "cat-4", Name: "แข่งขันฟุตซอล",
				Levels: []string{"ม.ต้น", "ม.ปลาย"}, Mode: models.ModeOnsite,
				TeamComposition: models.TeamComposition{Teachers: 1, Students: 7},
			},
			{
				ID: "act-5", CategoryID: "cat-2", Name: "การแข่งขันออกแบบเว็บไซต์",
				Levels: []string{"ม.4-6"}, Mode: models.ModeOnline,
				TeamComposition: models.TeamComposition{Teachers: 1, Students: 2},
			},
			{
				ID: "act-6", CategoryID: "cat-1", Name: "แข่งขันกล่าวสุนทรพจน์ภาษาอังกฤษ",
				Levels: []string{"ม.1-3", "ม.4-6"}, Mode: models.ModeHybrid,
				TeamComposition: models.TeamComposition{Teachers: 1, Students: 1},
			},
		},
		Teams: []models.Team{
			{
				ID: "T001", ActivityID: "act-1", TeamName: "คณิตคิดเร็ว",
				School: "โรงเรียนวิทยานุสรณ์", Level: "ป.4-6",
				Contact:  models.Contact{Name: "สมชาย ใจดี", Phone: "0812345678", Email: "somchai@email.com"},
				Teachers: []models.TeamMember{{FullName: "ครูสมศรี มีสุข", Detail: "somsri@email.com"}},
				Students: []models.TeamMember{
					{FullName: "ด.ช. ปิติ ยินดี", Detail: "ป.6/1"},
					{FullName: "ด.ญ. มานี รักเรียน", Detail: "ป.6/2"},
				},
				Status: models.TeamStatusApproved,
				Order:  1,
			},
			{
				ID: "T002", ActivityID: "act-2", TeamName: "Code Warriors",
				School: "โรงเรียนเตรียมอุดมศึกษา", Level: "ม.4-6",
				Contact:  models.Contact{Name: "ประหยัด พลังงาน", Phone: "0887654321", Email: "prayat@email.com"},
				Teachers: []models.TeamMember{{FullName: "ครูประวิตร จันทร์โอชา", Detail: "prawit@email.com"}},
				Students: []models.TeamMember{
					{FullName: "นายเอ นามสมมติ", Detail: "ม.5/3"},
					{FullName: "น.ส.บี สีสวย", Detail: "ม.5/3"},
					{FullName: "นายซี ดีจริง", Detail: "ม.5/4"},
				},
				Status: models.TeamStatusPending,
				Order:  2,
			},
			{
				ID: "T003", ActivityID: "act-3", TeamName: "ศิลปินน้อย",
				School: "โรงเรียนสาธิตจุฬาฯ", Level: "ป.1-3",
				Contact:  models.Contact{Name: "วินัย ดีเยี่ยม", Phone: "0911112222", Email: "winai@email.com"},
				Teachers: []models.TeamMember{{FullName: "ครูอารี เก่งมาก", Detail: "aree@email.com"}},
				Students: []models.TeamMember{{FullName: "ด.ช. วาดเก่ง ระบายสี", Detail: "ป.3/1"}},
				Status:   models.TeamStatusRejected,
				Order:    3,
			},
		},
	}
}
