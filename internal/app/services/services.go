package services

// Services defined in this package:
// - AuthService: authentication, token refresh and logout
// - StudentService: student registration, listing and CSV import
// - VaccineService: vaccine catalog management
// - DriveService: vaccination drive scheduling and conflict rules
// - RecordService: per-dose vaccination records and their lifecycle
// - DashboardService: portal-wide aggregated statistics
// - ExportService: CSV and XLSX report generation
