package source

import "github.com/insightdelivered/ministry-roster/internal/models"

// SampleRecords is the built-in roster shown when no other source has data.
// It returns a fresh slice on every call.
func SampleRecords() []models.ServiceRecord {
	return []models.ServiceRecord{
		{Date: "2025-01-05", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 5:33-37", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-01-12", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 5:38-48", SoundControl: "俊鑫", Director: "忠涵", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-01-19", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 6:1-4", SoundControl: "Jimmy", Director: "Jason", ProPresenter: "康康", MediaUpdate: "俊鑫"},
		{Date: "2025-01-26", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 6:5-15", SoundControl: "俊鑫", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "Zoey"},
		{Date: "2025-02-02", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 6:16-18", SoundControl: "Jimmy", Director: "忠涵", ProPresenter: "俊鑫", MediaUpdate: "康康"},
		{Date: "2025-02-09", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 6:19-24", SoundControl: "俊鑫", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-02-16", Preacher: "周明哲传道", WorshipLeader: "王通", Series: "单篇证道", Scripture: "Mark 11:41-12:1-2", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-02-23", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 6:25-34", SoundControl: "俊鑫", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-03-02", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 7:1-6", SoundControl: "Jimmy", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-03-09", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 7:7-12", SoundControl: "俊鑫", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-03-16", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 7:13-20", SoundControl: "Jimmy", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-03-23", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 7:21-29", SoundControl: "俊鑫", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-03-30", Preacher: "王通", WorshipLeader: "王通", Series: "复活节特别聚会", Scripture: "Luke 24:1-12", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-04-06", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 8:1-4", SoundControl: "俊鑫", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-04-13", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 8:5-13", SoundControl: "Jimmy", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-04-20", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 8:14-17", SoundControl: "俊鑫", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-04-27", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 8:18-22", SoundControl: "Jimmy", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-05-04", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 8:23-27", SoundControl: "俊鑫", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-05-11", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 8:28-34", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-05-18", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 9:1-8", SoundControl: "俊鑫", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-05-25", Preacher: "王通", WorshipLeader: "王通", Series: "愿你的国降临", Scripture: "Matthew 9:9-13", SoundControl: "Jimmy", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-06-01", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 9:14-17", SoundControl: "俊鑫", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "康康"},
		{Date: "2025-06-08", Preacher: "周明哲传道", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 9:18-26", SoundControl: "Jimmy", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-06-15", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 9:27-31", SoundControl: "俊鑫", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-06-22", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 9:32-38", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-06-29", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 10:1-4", SoundControl: "俊鑫", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-07-06", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 10:5-15", SoundControl: "Jimmy", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-07-13", Preacher: "周明哲传道", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 10:16-23", SoundControl: "俊鑫", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "康康"},
		{Date: "2025-07-20", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 10:24-33", SoundControl: "Jimmy", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-07-27", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 10:34-42", SoundControl: "俊鑫", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
		{Date: "2025-08-03", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 11:1-6", SoundControl: "Jimmy", Director: "Gavin", ProPresenter: "Jimmy", MediaUpdate: "俊鑫"},
		{Date: "2025-08-10", Preacher: "王通", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 11:7-15", SoundControl: "俊鑫", Director: "忠涵", ProPresenter: "康康", MediaUpdate: "Zoey"},
		{Date: "2025-08-17", Preacher: "周明哲传道", WorshipLeader: "王通", Series: "夏季系列", Scripture: "Matthew 11:16-24", SoundControl: "Jimmy", Director: "Jason", ProPresenter: "Zoey", MediaUpdate: "Jimmy"},
	}
}
