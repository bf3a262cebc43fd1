package memory

import "github.com/techipro/konnect-admin/types"

// The clone helpers copy a record together with everything it points to,
// so values handed out never share memory with the stored records

func cloneTechnician(technician types.Technician) types.Technician {
	if technician.Category != nil {
		category := *technician.Category
		technician.Category = &category
	}
	if technician.FirebaseKYCData != nil {
		data := *technician.FirebaseKYCData
		data.DocumentURLs = append([]string(nil), data.DocumentURLs...)
		if data.FaceMatch != nil {
			faceMatch := *data.FaceMatch
			data.FaceMatch = &faceMatch
		}
		technician.FirebaseKYCData = &data
	}
	return technician
}

func cloneTechnicians(technicians []types.Technician) []types.Technician {
	cloned := make([]types.Technician, len(technicians))
	for i, technician := range technicians {
		cloned[i] = cloneTechnician(technician)
	}
	return cloned
}

func cloneParty(party *types.Party) *types.Party {
	if party == nil {
		return nil
	}
	cloned := *party
	return &cloned
}

func cloneAppointment(appointment types.Appointment) types.Appointment {
	appointment.Customer = cloneParty(appointment.Customer)
	appointment.User = cloneParty(appointment.User)
	appointment.Technician = cloneParty(appointment.Technician)
	if appointment.Service != nil {
		service := *appointment.Service
		appointment.Service = &service
	}
	return appointment
}

func cloneAppointments(appointments []types.Appointment) []types.Appointment {
	cloned := make([]types.Appointment, len(appointments))
	for i, appointment := range appointments {
		cloned[i] = cloneAppointment(appointment)
	}
	return cloned
}

func clonePayment(payment types.Payment) types.Payment {
	payment.Customer = cloneParty(payment.Customer)
	payment.User = cloneParty(payment.User)
	return payment
}

func clonePayments(payments []types.Payment) []types.Payment {
	cloned := make([]types.Payment, len(payments))
	for i, payment := range payments {
		cloned[i] = clonePayment(payment)
	}
	return cloned
}

func cloneService(service types.Service) types.Service {
	if service.Category != nil {
		category := *service.Category
		service.Category = &category
	}
	return service
}

func cloneServices(services []types.Service) []types.Service {
	cloned := make([]types.Service, len(services))
	for i, service := range services {
		cloned[i] = cloneService(service)
	}
	return cloned
}
