package database

import (
	"gorm.io/gorm"
)

type Database struct {
	blogRepo    *BlogRepo
	projectRepo *ProjectRepo
	skillRepo   *SkillRepo
	profileRepo *ProfileRepo
	contactRepo *ContactRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		blogRepo:    NewBlogRepo(db),
		projectRepo: NewProjectRepo(db),
		skillRepo:   NewSkillRepo(db),
		profileRepo: NewProfileRepo(db),
		contactRepo: NewContactRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}
