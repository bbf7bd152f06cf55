package server

const (
	RouteInfo       = "/"
	RouteHealth     = "/api/health"
	RouteAuthLogin  = "/api/auth/login"
	RouteAuthLogout = "/api/auth/logout"
	RouteAuthMe     = "/api/auth/me"
	RouteAdminTenants = "/api/admin/tenants"

	RouteTenant       = "/api/tenants/{tenantID}"
	RouteUsers        = "/api/tenants/{tenantID}/users"
	RouteUser         = "/api/tenants/{tenantID}/users/{userID}"
	RouteEquipment    = "/api/tenants/{tenantID}/equipment"
	RouteEquipmentOne = "/api/tenants/{tenantID}/equipment/{equipmentID}"
	RouteExport       = "/api/tenants/{tenantID}/export/{kind}"
	RouteResource     = "/api/tenants/{tenantID}/{resource}"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteInfo, ChainMiddleware(s.InfoHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteAdminTenants, ChainMiddleware(s.AdminTenantsHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteTenant, ChainMiddleware(s.TenantHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteUsers, ChainMiddleware(s.UsersHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteUsers, ChainMiddleware(s.CreateUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteUser, ChainMiddleware(s.GetUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteUser, ChainMiddleware(s.UpdateUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteEquipment, ChainMiddleware(s.CreateEquipmentHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteEquipmentOne, ChainMiddleware(s.GetEquipmentHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteExport, ChainMiddleware(s.ExportHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteResource, ChainMiddleware(s.ResourceHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("OPTIONS /api/", ChainMiddleware(s.PreflightHandler(), s.CorsMiddleware))
}
