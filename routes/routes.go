package routes

import (
	"net/http"

	"atelier/admins"
	"atelier/analytics"
	"atelier/auth"
	"atelier/blogs"
	"atelier/booking"
	"atelier/clients"
	"atelier/contacts"
	"atelier/credentials"
	"atelier/middleware"
	"atelier/models"
	"atelier/newsletter"
	"atelier/notes"
	"atelier/occasions"
	"atelier/pages"
	"atelier/portal"
	"atelier/pricing"
	"atelier/projects"
	"atelier/ratelim"
	"atelier/services"
	"atelier/skills"
	"atelier/storage"
	"atelier/testimonials"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddAdminAccountRoutes(router *httprouter.Router) {
	router.GET("/api/admins/me", middleware.AdminOnly(admins.GetMe))
	router.GET("/api/admins", middleware.SuperAdminOnly(admins.GetAllAdmins))
	router.PUT("/api/admins/:id", middleware.SuperAdminOnly(admins.UpdateAdmin))
	router.DELETE("/api/admins/:id", middleware.SuperAdminOnly(admins.DeleteAdmin))
}

func AddBookingRoutes(router *httprouter.Router) {
	// Public booking flow
	router.GET("/api/bookings/available-slots", ratelim.RateLimit(booking.GetAvailableSlots))
	router.GET("/api/bookings/check-availability", ratelim.RateLimit(booking.CheckAvailability))
	router.POST("/api/bookings", ratelim.RateLimit(booking.CreateBooking))

	// Admin booking management
	router.GET("/api/admin/bookings/all", middleware.RequirePermission(models.PermManageBookings, booking.GetAllBookings))
	router.GET("/api/admin/bookings/upcoming", middleware.RequirePermission(models.PermManageBookings, booking.GetUpcomingBookings))
	router.GET("/api/admin/bookings/stats", middleware.RequirePermission(models.PermManageBookings, booking.GetBookingStats))
	router.GET("/api/admin/bookings/booking/:id", middleware.RequirePermission(models.PermManageBookings, booking.GetBooking))
	router.GET("/api/admin/bookings/booking/:id/confirmation.pdf", middleware.RequirePermission(models.PermManageBookings, booking.DownloadConfirmation))
	router.PUT("/api/admin/bookings/booking/:id", middleware.RequirePermission(models.PermManageBookings, booking.UpdateBooking))
	router.DELETE("/api/admin/bookings/booking/:id", middleware.RequirePermission(models.PermManageBookings, booking.DeleteBooking))

	// Availability configuration
	router.GET("/api/booking-settings", ratelim.RateLimit(booking.GetActiveSettings))
	router.GET("/api/admin/booking-settings", middleware.RequirePermission(models.PermManageBookings, booking.GetSettingsAdmin))
	router.POST("/api/admin/booking-settings", middleware.RequirePermission(models.PermManageBookings, booking.UpsertSettings))
	router.PUT("/api/admin/booking-settings/:id", middleware.RequirePermission(models.PermManageBookings, booking.UpdateSettings))
	router.DELETE("/api/admin/booking-settings/:id", middleware.RequirePermission(models.PermManageBookings, booking.DeleteSettings))
}

func AddClientRoutes(router *httprouter.Router) {
	// Portal auth and self-service
	router.POST("/api/client/auth/login", ratelim.RateLimit(clients.Login))
	router.GET("/api/client/auth/me", middleware.ClientOnly(clients.GetMe))
	router.GET("/api/client/projects", middleware.ClientOnly(portal.GetMyProjects))
	router.GET("/api/client/projects/:id", middleware.ClientOnly(portal.GetMyProject))
	router.POST("/api/client/testimonials", middleware.ClientOnly(testimonials.SubmitClientTestimonial))

	// Admin account management
	router.GET("/api/admin/clients", middleware.RequirePermission(models.PermManageClients, clients.GetAllClients))
	router.POST("/api/admin/clients", middleware.RequirePermission(models.PermManageClients, clients.CreateClient))
	router.GET("/api/admin/clients/:id", middleware.RequirePermission(models.PermManageClients, clients.GetClient))
	router.PUT("/api/admin/clients/:id", middleware.RequirePermission(models.PermManageClients, clients.UpdateClient))
	router.DELETE("/api/admin/clients/:id", middleware.RequirePermission(models.PermManageClients, clients.DeleteClient))

	// Admin project tracking
	router.GET("/api/admin/client-projects", middleware.RequirePermission(models.PermManageClients, portal.GetAllProjects))
	router.POST("/api/admin/client-projects", middleware.RequirePermission(models.PermManageClients, portal.CreateProject))
	router.GET("/api/admin/client-projects/:id", middleware.RequirePermission(models.PermManageClients, portal.GetProject))
	router.PUT("/api/admin/client-projects/:id", middleware.RequirePermission(models.PermManageClients, portal.UpdateProject))
	router.DELETE("/api/admin/client-projects/:id", middleware.RequirePermission(models.PermManageClients, portal.DeleteProject))
	router.POST("/api/admin/client-projects/:id/milestones", middleware.RequirePermission(models.PermManageClients, portal.AddMilestone))
	router.PUT("/api/admin/client-projects/:id/milestones/:milestoneId", middleware.RequirePermission(models.PermManageClients, portal.ToggleMilestone))
	router.DELETE("/api/admin/client-projects/:id/milestones/:milestoneId", middleware.RequirePermission(models.PermManageClients, portal.DeleteMilestone))
	router.POST("/api/admin/client-projects/:id/updates", middleware.RequirePermission(models.PermManageClients, portal.AddUpdate))
	router.POST("/api/admin/client-projects/:id/files", middleware.RequirePermission(models.PermManageClients, portal.AddFile))
	router.DELETE("/api/admin/client-projects/:id/files/:fileId", middleware.RequirePermission(models.PermManageClients, portal.DeleteFile))
}

func AddProjectRoutes(router *httprouter.Router) {
	router.GET("/api/projects", ratelim.RateLimit(projects.GetProjects))
	router.GET("/api/projects/:slug", ratelim.RateLimit(projects.GetProjectBySlug))
	router.GET("/api/admin/projects", middleware.RequirePermission(models.PermManageProjects, projects.GetAllProjectsAdmin))
	router.POST("/api/admin/projects", middleware.RequirePermission(models.PermManageProjects, projects.CreateProject))
	router.PUT("/api/admin/projects/:id", middleware.RequirePermission(models.PermManageProjects, projects.UpdateProject))
	router.DELETE("/api/admin/projects/:id", middleware.RequirePermission(models.PermManageProjects, projects.DeleteProject))
}

func AddServiceRoutes(router *httprouter.Router) {
	router.GET("/api/services", ratelim.RateLimit(services.GetServices))
	router.POST("/api/admin/services", middleware.AdminOnly(services.CreateService))
	router.PUT("/api/admin/services/:id", middleware.AdminOnly(services.UpdateService))
	router.DELETE("/api/admin/services/:id", middleware.AdminOnly(services.DeleteService))
}

func AddBlogRoutes(router *httprouter.Router) {
	router.GET("/api/blogs", ratelim.RateLimit(blogs.GetBlogs))
	router.GET("/api/blogs/:slug", ratelim.RateLimit(blogs.GetBlogBySlug))
	router.GET("/api/admin/blogs", middleware.RequirePermission(models.PermManageBlogs, blogs.GetAllBlogsAdmin))
	router.POST("/api/admin/blogs", middleware.RequirePermission(models.PermManageBlogs, blogs.CreateBlog))
	router.PUT("/api/admin/blogs/:id", middleware.RequirePermission(models.PermManageBlogs, blogs.UpdateBlog))
	router.DELETE("/api/admin/blogs/:id", middleware.RequirePermission(models.PermManageBlogs, blogs.DeleteBlog))
}

func AddSkillRoutes(router *httprouter.Router) {
	router.GET("/api/skills", ratelim.RateLimit(skills.GetSkills))
	router.POST("/api/admin/skills", middleware.AdminOnly(skills.CreateSkill))
	router.PUT("/api/admin/skills/:id", middleware.AdminOnly(skills.UpdateSkill))
	router.DELETE("/api/admin/skills/:id", middleware.AdminOnly(skills.DeleteSkill))
}

func AddTestimonialRoutes(router *httprouter.Router) {
	router.GET("/api/testimonials", ratelim.RateLimit(testimonials.GetTestimonials))
	router.POST("/api/testimonials/submit", ratelim.RateLimit(testimonials.SubmitTestimonial))
	router.GET("/api/admin/testimonials", middleware.AdminOnly(testimonials.GetAllTestimonialsAdmin))
	router.POST("/api/admin/testimonials", middleware.AdminOnly(testimonials.CreateTestimonial))
	router.PUT("/api/admin/testimonials/:id/status", middleware.AdminOnly(testimonials.SetTestimonialStatus))
	router.DELETE("/api/admin/testimonials/:id", middleware.AdminOnly(testimonials.DeleteTestimonial))
}

func AddOccasionRoutes(router *httprouter.Router) {
	// Public catalog, request intake and short-code link access
	router.GET("/api/occasions", ratelim.RateLimit(occasions.GetOccasionServices))
	router.GET("/api/occasions/service/:id", ratelim.RateLimit(occasions.GetOccasionService))
	router.POST("/api/occasions/requests", ratelim.RateLimit(occasions.SubmitRequest))
	router.GET("/api/occasions/link/:code", ratelim.RateLimit(occasions.AccessLink))

	// Admin catalog management
	router.POST("/api/admin/occasions", middleware.AdminOnly(occasions.CreateOccasionService))
	router.PUT("/api/admin/occasions/service/:id", middleware.AdminOnly(occasions.UpdateOccasionService))
	router.DELETE("/api/admin/occasions/service/:id", middleware.AdminOnly(occasions.DeleteOccasionService))

	// Admin request pipeline
	router.GET("/api/admin/occasions/requests", middleware.AdminOnly(occasions.GetAllRequests))
	router.GET("/api/admin/occasions/requests/:id", middleware.AdminOnly(occasions.GetRequest))
	router.PUT("/api/admin/occasions/requests/:id", middleware.AdminOnly(occasions.UpdateRequest))

	// Admin link management
	router.POST("/api/admin/occasions/links", middleware.AdminOnly(occasions.GenerateLink))
	router.GET("/api/admin/occasions/links", middleware.AdminOnly(occasions.GetAllLinks))
	router.GET("/api/admin/occasions/links/:id", middleware.AdminOnly(occasions.GetLink))
	router.PUT("/api/admin/occasions/links/:id", middleware.AdminOnly(occasions.UpdateLink))
	router.DELETE("/api/admin/occasions/links/:id", middleware.AdminOnly(occasions.DeleteLink))
}

func AddContactRoutes(router *httprouter.Router) {
	router.POST("/api/contact", ratelim.RateLimit(contacts.SubmitContact))
	router.GET("/api/admin/contacts", middleware.AdminOnly(contacts.GetAllContacts))
	router.GET("/api/admin/contacts/:id", middleware.AdminOnly(contacts.GetContact))
	router.PUT("/api/admin/contacts/:id/read", middleware.AdminOnly(contacts.MarkContactRead))
	router.DELETE("/api/admin/contacts/:id", middleware.AdminOnly(contacts.DeleteContact))
}

func AddNewsletterRoutes(router *httprouter.Router) {
	router.POST("/api/newsletter/subscribe", ratelim.RateLimit(newsletter.Subscribe))
	router.POST("/api/newsletter/unsubscribe", ratelim.RateLimit(newsletter.Unsubscribe))
	router.GET("/api/admin/newsletter", middleware.AdminOnly(newsletter.GetAllSubscribers))
	router.GET("/api/admin/newsletter/export", middleware.AdminOnly(newsletter.ExportSubscribers))
	router.DELETE("/api/admin/newsletter/:id", middleware.AdminOnly(newsletter.DeleteSubscriber))
}

func AddNoteRoutes(router *httprouter.Router) {
	router.GET("/api/notes", middleware.AdminOnly(notes.GetNotes))
	router.POST("/api/notes", middleware.AdminOnly(notes.CreateNote))
	router.GET("/api/notes/:id", middleware.AdminOnly(notes.GetNote))
	router.PUT("/api/notes/:id", middleware.AdminOnly(notes.UpdateNote))
	router.DELETE("/api/notes/:id", middleware.AdminOnly(notes.DeleteNote))
}

func AddPricingRoutes(router *httprouter.Router) {
	router.GET("/api/pricing", ratelim.RateLimit(pricing.GetPricing))
	router.PUT("/api/admin/pricing", middleware.AdminOnly(pricing.UpdatePricing))
}

func AddPageRoutes(router *httprouter.Router) {
	router.GET("/api/pages/:key", ratelim.RateLimit(pages.GetPage))
	router.GET("/api/admin/pages", middleware.AdminOnly(pages.GetAllPages))
	router.PUT("/api/admin/pages/:key", middleware.AdminOnly(pages.UpsertPage))
	router.DELETE("/api/admin/pages/:key", middleware.AdminOnly(pages.DeletePage))
}

func AddAnalyticsRoutes(router *httprouter.Router) {
	router.POST("/api/analytics/track", ratelim.RateLimit(analytics.TrackVisit))
	router.GET("/api/admin/analytics", middleware.RequirePermission(models.PermViewAnalytics, analytics.GetSummary))
}

func AddStorageRoutes(router *httprouter.Router) {
	router.POST("/api/admin/storage/upload", middleware.AdminOnly(storage.UploadFile))
	router.GET("/api/admin/storage/files", middleware.AdminOnly(storage.GetAllFiles))
	router.DELETE("/api/admin/storage/files/:id", middleware.AdminOnly(storage.DeleteFile))
}

func AddCredentialRoutes(router *httprouter.Router) {
	router.GET("/api/admin/credentials", middleware.SuperAdminOnly(credentials.GetAllCredentials))
	router.POST("/api/admin/credentials", middleware.SuperAdminOnly(credentials.CreateCredential))
	router.PUT("/api/admin/credentials/:id", middleware.SuperAdminOnly(credentials.UpdateCredential))
	router.DELETE("/api/admin/credentials/:id", middleware.SuperAdminOnly(credentials.DeleteCredential))
}
