package patient

import (
	"context"
	"time"
)

// Seed populates an empty roster with a demonstration ward census. It is a
// no-op when the store already contains patients.
func (s *Service) Seed(ctx context.Context) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now()
	var patients []*Patient
	for i, row := range seedRoster {
		patients = append(patients, &Patient{
			MRN:        row.mrn,
			Name:       row.name,
			Ward:       row.ward,
			Age:        row.age,
			Status:     row.status,
			AdmittedAt: now.Add(-time.Duration(i*7) * time.Hour),
		})
	}

	if err := s.Save(ctx, patients...); err != nil {
		return err
	}
	s.logger.Info("seeded demonstration roster", "count", len(patients))
	return nil
}

var seedRoster = []struct {
	mrn    string
	name   string
	ward   string
	age    int
	status Status
}{
	{"MRN-100231", "Abigail Okafor", "Cardiology", 67, StatusAdmitted},
	{"MRN-100232", "Bernard Castellanos", "Cardiology", 72, StatusAdmitted},
	{"MRN-100233", "Chloe Lindgren", "Cardiology", 58, StatusObservation},
	{"MRN-100234", "Darius Whitfield", "Cardiology", 81, StatusDischarged},
	{"MRN-100235", "Elena Marchetti", "Oncology", 49, StatusAdmitted},
	{"MRN-100236", "Farid Nasser", "Oncology", 63, StatusAdmitted},
	{"MRN-100237", "Greta Halvorsen", "Oncology", 55, StatusObservation},
	{"MRN-100238", "Henry Adeyemi", "Oncology", 70, StatusDischarged},
	{"MRN-100239", "Imogen Vasquez", "Orthopaedics", 34, StatusAdmitted},
	{"MRN-100240", "Jonas Petrov", "Orthopaedics", 28, StatusObservation},
	{"MRN-100241", "Katarina Szabo", "Orthopaedics", 45, StatusAdmitted},
	{"MRN-100242", "Liam Donnelly", "Orthopaedics", 52, StatusDischarged},
	{"MRN-100243", "Maya Krishnan", "Respiratory", 61, StatusAdmitted},
	{"MRN-100244", "Nikolai Berglund", "Respiratory", 77, StatusAdmitted},
	{"MRN-100245", "Odette Fontaine", "Respiratory", 69, StatusObservation},
	{"MRN-100246", "Pablo Herrera", "Respiratory", 43, StatusDischarged},
	{"MRN-100247", "Quinn Mackenzie", "Neurology", 38, StatusAdmitted},
	{"MRN-100248", "Rosa Delgado", "Neurology", 84, StatusAdmitted},
	{"MRN-100249", "Samuel Osei", "Neurology", 57, StatusObservation},
	{"MRN-100250", "Talia Weissman", "Neurology", 29, StatusDischarged},
	{"MRN-100251", "Umar Farouk", "General", 47, StatusAdmitted},
	{"MRN-100252", "Vera Kovalenko", "General", 66, StatusAdmitted},
	{"MRN-100253", "Wendell Grayson", "General", 74, StatusObservation},
	{"MRN-100254", "Xenia Papadopoulos", "General", 51, StatusAdmitted},
	{"MRN-100255", "Yusuf Demir", "General", 60, StatusDischarged},
	{"MRN-100256", "Zofia Nowak", "General", 36, StatusAdmitted},
	{"MRN-100257", "Arthur Pemberton", "Geriatrics", 88, StatusAdmitted},
	{"MRN-100258", "Beatrice Lindqvist", "Geriatrics", 91, StatusObservation},
	{"MRN-100259", "Constance Ifeanyi", "Geriatrics", 79, StatusAdmitted},
	{"MRN-100260", "Desmond Varga", "Geriatrics", 83, StatusDischarged},
}
