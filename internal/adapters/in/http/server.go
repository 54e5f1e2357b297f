// Package http is the inbound HTTP adapter: an echo server that
// translates JSON requests into commands and queries. Authentication is
// a Bearer JWT; couriers and restaurant admins are additionally resolved
// through the user directory before they may act.
package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server wires the HTTP routes to the application use cases.
type Server struct {
	placeOrderHandler       commands.PlaceOrderCommandHandler
	confirmOrderHandler     commands.ConfirmOrderCommandHandler
	rejectOrderHandler      commands.RejectOrderCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	dispatchOrderHandler    commands.DispatchOrderCommandHandler
	acceptAssignmentHandler commands.AcceptAssignmentCommandHandler
	rejectAssignmentHandler commands.RejectAssignmentCommandHandler
	advanceOrderHandler     commands.AdvanceOrderCommandHandler

	createCourierHandler  commands.CreateCourierCommandHandler
	reviewCourierHandler  commands.ReviewCourierCommandHandler
	setOnlineHandler      commands.SetCourierOnlineCommandHandler
	updateLocationHandler commands.UpdateCourierLocationCommandHandler

	activeOrdersHandler      queries.GetCourierActiveOrdersQueryHandler
	courierProfileHandler    queries.GetCourierProfileQueryHandler
	uncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler

	userDirectory ports.UserDirectory
	validate      *validator.Validate
}

// ServerHandlers groups the use-case handlers the server needs.
type ServerHandlers struct {
	PlaceOrder       commands.PlaceOrderCommandHandler
	ConfirmOrder     commands.ConfirmOrderCommandHandler
	RejectOrder      commands.RejectOrderCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	DispatchOrder    commands.DispatchOrderCommandHandler
	AcceptAssignment commands.AcceptAssignmentCommandHandler
	RejectAssignment commands.RejectAssignmentCommandHandler
	AdvanceOrder     commands.AdvanceOrderCommandHandler

	CreateCourier  commands.CreateCourierCommandHandler
	ReviewCourier  commands.ReviewCourierCommandHandler
	SetOnline      commands.SetCourierOnlineCommandHandler
	UpdateLocation commands.UpdateCourierLocationCommandHandler

	ActiveOrders      queries.GetCourierActiveOrdersQueryHandler
	CourierProfile    queries.GetCourierProfileQueryHandler
	UncompletedOrders queries.GetUncompletedOrdersQueryHandler
}

// NewServer creates the HTTP server over the given handlers.
func NewServer(handlers ServerHandlers, userDirectory ports.UserDirectory) *Server {
	return &Server{
		placeOrderHandler:       handlers.PlaceOrder,
		confirmOrderHandler:     handlers.ConfirmOrder,
		rejectOrderHandler:      handlers.RejectOrder,
		cancelOrderHandler:      handlers.CancelOrder,
		dispatchOrderHandler:    handlers.DispatchOrder,
		acceptAssignmentHandler: handlers.AcceptAssignment,
		rejectAssignmentHandler: handlers.RejectAssignment,
		advanceOrderHandler:     handlers.AdvanceOrder,

		createCourierHandler:  handlers.CreateCourier,
		reviewCourierHandler:  handlers.ReviewCourier,
		setOnlineHandler:      handlers.SetOnline,
		updateLocationHandler: handlers.UpdateLocation,

		activeOrdersHandler:      handlers.ActiveOrders,
		courierProfileHandler:    handlers.CourierProfile,
		uncompletedOrdersHandler: handlers.UncompletedOrders,

		userDirectory: userDirectory,
		validate:      validator.New(),
	}
}

// RegisterRoutes mounts all routes under /api/v1 behind the JWT
// middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))

	api.POST("/orders", s.PlaceOrder, requireRole(RoleCustomer))
	api.POST("/orders/:id/cancel", s.CancelOrder, requireRole(RoleCustomer))
	api.POST("/orders/:id/dispatch", s.DispatchOrder, requireRole(RoleAdmin))
	api.GET("/orders/active", s.GetUncompletedOrders, requireRole(RoleAdmin))

	api.POST("/restaurants/:restaurantId/orders/:id/confirm", s.ConfirmOrder, requireRole(RoleRestaurantAdmin))
	api.POST("/restaurants/:restaurantId/orders/:id/reject", s.RejectOrder, requireRole(RoleRestaurantAdmin))

	api.POST("/couriers", s.CreateCourier, requireRole(RoleAdmin))
	api.POST("/couriers/:id/review", s.ReviewCourier, requireRole(RoleAdmin))

	courierAPI := api.Group("/couriers", requireRole(RoleCourier))
	courierAPI.PUT("/location", s.UpdateLocation)
	courierAPI.PUT("/shift", s.SetShift)
	courierAPI.GET("/orders", s.GetActiveOrders)
	courierAPI.GET("/profile", s.GetProfile)

	assignmentAPI := api.Group("/assignments", requireRole(RoleCourier))
	assignmentAPI.POST("/:id/accept", s.AcceptAssignment)
	assignmentAPI.POST("/:id/reject", s.RejectAssignment)
	assignmentAPI.POST("/:id/ready", s.MarkReady)
	assignmentAPI.POST("/:id/en-route", s.StartTrip)
	assignmentAPI.POST("/:id/delivered", s.CompleteDelivery)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	actor, _ := actorFrom(c)

	var req PlaceOrderRequest
	if err := s.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(c, err)
	}

	dropoff, err := kernel.NewGeoPoint(req.DropoffLat, req.DropoffLng)
	if err != nil {
		return badRequest(c, err)
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		productID, iErr := kernel.UUIDFromString(line.ProductID)
		if iErr != nil {
			return badRequest(c, iErr)
		}
		item, iErr := order.NewItem(productID, line.Name, line.Price, line.Quantity)
		if iErr != nil {
			return badRequest(c, iErr)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(
		orderID, actor.UserID, restaurantID,
		items, dropoff, req.DropoffAddress,
	)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.placeOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, OrderPlacedResponse{ID: orderID.String()})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	actor, _ := actorFrom(c)

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor.UserID)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.cancelOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch.
func (s *Server) DispatchOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.dispatchOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles POST /api/v1/restaurants/:restaurantId/orders/:id/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	return s.restaurantDecision(c, func(orderID, restaurantID kernel.UUID) error {
		cmd, err := commands.NewConfirmOrderCommand(orderID, restaurantID)
		if err != nil {
			return err
		}
		return s.confirmOrderHandler.Handle(c.Request().Context(), cmd)
	})
}

// RejectOrder handles POST /api/v1/restaurants/:restaurantId/orders/:id/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	return s.restaurantDecision(c, func(orderID, restaurantID kernel.UUID) error {
		cmd, err := commands.NewRejectOrderCommand(orderID, restaurantID)
		if err != nil {
			return err
		}
		return s.rejectOrderHandler.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) restaurantDecision(c echo.Context, decide func(orderID, restaurantID kernel.UUID) error) error {
	actor, _ := actorFrom(c)

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	restaurantID, err := pathUUID(c, "restaurantId")
	if err != nil {
		return badRequest(c, err)
	}

	if actor.Role != RoleAdmin {
		isAdmin, dirErr := s.userDirectory.IsRestaurantAdmin(c.Request().Context(), actor.UserID, restaurantID)
		if dirErr != nil {
			return respondError(c, dirErr)
		}
		if !isAdmin {
			return c.JSON(http.StatusForbidden, ErrorDTO{
				Code:    http.StatusForbidden,
				Message: "not an admin of this restaurant",
			})
		}
	}

	if err = decide(orderID, restaurantID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(c echo.Context) error {
	var req CreateCourierRequest
	if err := s.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, courier.VehicleKind(req.Vehicle))
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.createCourierHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, CourierCreatedResponse{ID: courierID.String()})
}

// ReviewCourier handles POST /api/v1/couriers/:id/review.
func (s *Server) ReviewCourier(c echo.Context) error {
	courierID, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}

	var req ReviewCourierRequest
	if err = s.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewReviewCourierCommand(courierID, *req.Approved)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.reviewCourierHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateLocation handles PUT /api/v1/couriers/location.
func (s *Server) UpdateLocation(c echo.Context) error {
	courierID, err := s.actingCourier(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateLocationRequest
	if err = s.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, req.Latitude, req.Longitude)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.updateLocationHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetShift handles PUT /api/v1/couriers/shift.
func (s *Server) SetShift(c echo.Context) error {
	courierID, err := s.actingCourier(c)
	if err != nil {
		return respondError(c, err)
	}

	var req ShiftRequest
	if err = s.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewSetCourierOnlineCommand(courierID, *req.Online)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.setOnlineHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AcceptAssignment handles POST /api/v1/assignments/:id/accept.
func (s *Server) AcceptAssignment(c echo.Context) error {
	return s.courierOrderAction(c, func(orderID, courierID kernel.UUID) error {
		cmd, err := commands.NewAcceptAssignmentCommand(orderID, courierID)
		if err != nil {
			return err
		}
		return s.acceptAssignmentHandler.Handle(c.Request().Context(), cmd)
	})
}

// RejectAssignment handles POST /api/v1/assignments/:id/reject.
func (s *Server) RejectAssignment(c echo.Context) error {
	var req RejectAssignmentRequest
	if err := s.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	return s.courierOrderAction(c, func(orderID, courierID kernel.UUID) error {
		cmd, err := commands.NewRejectAssignmentCommand(orderID, courierID, req.Reason)
		if err != nil {
			return err
		}
		return s.rejectAssignmentHandler.Handle(c.Request().Context(), cmd)
	})
}

// MarkReady handles POST /api/v1/assignments/:id/ready.
func (s *Server) MarkReady(c echo.Context) error {
	return s.advance(c, commands.StageReady)
}

// StartTrip handles POST /api/v1/assignments/:id/en-route.
func (s *Server) StartTrip(c echo.Context) error {
	return s.advance(c, commands.StageEnRoute)
}

// CompleteDelivery handles POST /api/v1/assignments/:id/delivered.
func (s *Server) CompleteDelivery(c echo.Context) error {
	return s.advance(c, commands.StageDelivered)
}

func (s *Server) advance(c echo.Context, stage commands.DeliveryStage) error {
	return s.courierOrderAction(c, func(orderID, courierID kernel.UUID) error {
		cmd, err := commands.NewAdvanceOrderCommand(orderID, courierID, stage)
		if err != nil {
			return err
		}
		return s.advanceOrderHandler.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) courierOrderAction(c echo.Context, act func(orderID, courierID kernel.UUID) error) error {
	courierID, err := s.actingCourier(c)
	if err != nil {
		return respondError(c, err)
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}

	if err = act(orderID, courierID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/couriers/orders.
func (s *Server) GetActiveOrders(c echo.Context) error {
	courierID, err := s.actingCourier(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetCourierActiveOrdersQuery(courierID)
	if err != nil {
		return badRequest(c, err)
	}

	active, err := s.activeOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]ActiveOrderResponse, len(active))
	for i, item := range active {
		response[i] = ActiveOrderResponse{
			ID:                 item.ID.String(),
			ShortCode:          item.ShortCode,
			Status:             item.Status.String(),
			DropoffAddress:     item.DropoffAddress,
			DeliveryDistanceKm: item.DeliveryDistanceKm,
			DeliveryFee:        item.DeliveryFee,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetProfile handles GET /api/v1/couriers/profile.
func (s *Server) GetProfile(c echo.Context) error {
	courierID, err := s.actingCourier(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetCourierProfileQuery(courierID)
	if err != nil {
		return badRequest(c, err)
	}

	profile, err := s.courierProfileHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, CourierProfileResponse{
		ID:              profile.ID.String(),
		Name:            profile.Name,
		Vehicle:         string(profile.Vehicle),
		Approval:        profile.Approval.String(),
		IsOnline:        profile.IsOnline,
		IsAvailable:     profile.IsAvailable,
		TotalDeliveries: profile.TotalDeliveries,
		Rating:          profile.Rating,
		DeliveredOrders: profile.DeliveredOrders,
		FeeEarnings:     profile.FeeEarnings,
	})
}

// GetUncompletedOrders handles GET /api/v1/orders/active.
func (s *Server) GetUncompletedOrders(c echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	uncompleted, err := s.uncompletedOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]UncompletedOrderResponse, len(uncompleted))
	for i, item := range uncompleted {
		response[i] = UncompletedOrderResponse{
			ID:        item.ID.String(),
			ShortCode: item.ShortCode,
			Status:    item.Status.String(),
			PlacedAt:  item.PlacedAt,
		}
		if item.CourierID != nil {
			id := item.CourierID.String()
			response[i].CourierID = &id
		}
	}

	return c.JSON(http.StatusOK, response)
}

// actingCourier resolves the caller's courier identity through the user
// directory.
func (s *Server) actingCourier(c echo.Context) (kernel.UUID, error) {
	actor, _ := actorFrom(c)
	return s.userDirectory.CourierIDForUser(c.Request().Context(), actor.UserID)
}

func (s *Server) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return s.validate.Struct(req)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorDTO{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// respondError maps use-case errors to HTTP statuses.
func respondError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrOrderNotOwnedByCustomer),
		errors.Is(err, commands.ErrOrderNotOwnedByRestaurant),
		errors.Is(err, order.ErrNotAssigned):
		status = http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, commands.ErrNoCourierAvailable),
		errors.Is(err, ports.ErrConcurrentModification):
		status = http.StatusConflict
	case errors.Is(err, commands.ErrBelowMinimumOrder),
		errors.Is(err, commands.ErrRestaurantIsNotActive),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}

	return c.JSON(status, ErrorDTO{Code: status, Message: err.Error()})
}
