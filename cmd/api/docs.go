package main

// @title           mcp-openweathermap
// @version         1.0
// @description     OpenWeatherMap weather, forecast, air quality and geocoding exposed as MCP tools at /mcp.
// @description     The REST endpoints below cover health checks and location resolution.

// @host      localhost:8000
// @BasePath  /

// @externalDocs.description  OpenWeatherMap API
// @externalDocs.url          https://openweathermap.org/api
