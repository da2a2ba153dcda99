package main

import (
	bookingshandler "stayrate/internal/bookings/handler"
	bookingsrepo "stayrate/internal/bookings/repository"
	bookingsservice "stayrate/internal/bookings/service"
	bookingsvalidator "stayrate/internal/bookings/validator"
	roomshandler "stayrate/internal/rooms/handler"
	roomsrepo "stayrate/internal/rooms/repository"
	roomsservice "stayrate/internal/rooms/service"
	roomsvalidator "stayrate/internal/rooms/validator"
	"stayrate/pkg/app"
	"stayrate/pkg/config"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Bookings service")

	roomStore := storage.NewFileStore[model.Room](cfg.DataDir, storage.RoomsFile)
	bookingStore := storage.NewFileStore[model.Booking](cfg.DataDir, storage.BookingsFile)

	roomRepo := roomsrepo.NewRoomRepository(roomStore)
	bookingRepo := bookingsrepo.NewBookingRepository(bookingStore)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		roomRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)

	// The booking service doubles as the availability checker for room
	// searches and room deletion cascades.
	roomService := roomsservice.NewRoomService(
		roomRepo,
		bookingRepo,
		bookingService,
		roomsvalidator.NewRoomValidator(cfg.Log),
		cfg,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		roomshandler.NewRoomHandler(roomService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.Run()
}
