package config

import "github.com/tierscope/tierscope/pkg/assess"

// defaultProfiles returns the shipped threshold profiles for the
// standard assessment areas. Operators override individual categories
// in .tierscope/config.yaml; categories absent here (the roll-up) are
// derived, not thresholded.
func defaultProfiles() map[string]ThresholdProfile {
	return map[string]ThresholdProfile{
		"AppAgents": {
			Directions: map[string]assess.Direction{
				"percentAgentsLessThan1YearOld": assess.IncreasingIsBetter,
				"percentAgentsReportingData":    assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"percentAgentsLessThan1YearOld": 50, "percentAgentsReportingData": 50},
			Gold:     map[string]float64{"percentAgentsLessThan1YearOld": 80, "percentAgentsReportingData": 80},
			Platinum: map[string]float64{"percentAgentsLessThan1YearOld": 100, "percentAgentsReportingData": 95},
		},
		"MachineAgents": {
			Directions: map[string]assess.Direction{
				"percentAgentsLessThan1YearOld":            assess.IncreasingIsBetter,
				"percentAgentsInstalledAlongsideAppAgents": assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"percentAgentsLessThan1YearOld": 50, "percentAgentsInstalledAlongsideAppAgents": 50},
			Gold:     map[string]float64{"percentAgentsLessThan1YearOld": 80, "percentAgentsInstalledAlongsideAppAgents": 80},
			Platinum: map[string]float64{"percentAgentsLessThan1YearOld": 100, "percentAgentsInstalledAlongsideAppAgents": 95},
		},
		"BusinessTransactions": {
			Directions: map[string]assess.Direction{
				"numberOfBTs":        assess.DecreasingIsBetter,
				"percentBTsWithLoad": assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"numberOfBTs": 600, "percentBTsWithLoad": 50},
			Gold:     map[string]float64{"numberOfBTs": 400, "percentBTsWithLoad": 75},
			Platinum: map[string]float64{"numberOfBTs": 200, "percentBTsWithLoad": 90},
		},
		"Backends": {
			Directions: map[string]assess.Direction{
				"percentBackendsWithLoad":    assess.IncreasingIsBetter,
				"numberOfCustomBackendRules": assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"percentBackendsWithLoad": 50},
			Gold:     map[string]float64{"percentBackendsWithLoad": 75, "numberOfCustomBackendRules": 1},
			Platinum: map[string]float64{"percentBackendsWithLoad": 90, "numberOfCustomBackendRules": 2},
		},
		"OverheadSettings": {
			Directions: map[string]assess.Direction{
				"percentBTsWithDeveloperModeEnabled": assess.DecreasingIsBetter,
				"aggressiveSnapshottingPercent":      assess.DecreasingIsBetter,
			},
			Silver:   map[string]float64{"percentBTsWithDeveloperModeEnabled": 20, "aggressiveSnapshottingPercent": 20},
			Gold:     map[string]float64{"percentBTsWithDeveloperModeEnabled": 5, "aggressiveSnapshottingPercent": 5},
			Platinum: map[string]float64{"percentBTsWithDeveloperModeEnabled": 0, "aggressiveSnapshottingPercent": 0},
		},
		"ServiceEndpoints": {
			Directions: map[string]assess.Direction{
				"percentServiceEndpointsWithLoad":    assess.IncreasingIsBetter,
				"numberOfCustomServiceEndpointRules": assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"percentServiceEndpointsWithLoad": 50},
			Gold:     map[string]float64{"percentServiceEndpointsWithLoad": 75, "numberOfCustomServiceEndpointRules": 1},
			Platinum: map[string]float64{"percentServiceEndpointsWithLoad": 90, "numberOfCustomServiceEndpointRules": 2},
		},
		"ErrorConfiguration": {
			Directions: map[string]assess.Direction{
				"successPercentageOfWorstTransaction": assess.IncreasingIsBetter,
				"numberOfCustomErrorRules":            assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"successPercentageOfWorstTransaction": 80},
			Gold:     map[string]float64{"successPercentageOfWorstTransaction": 95, "numberOfCustomErrorRules": 1},
			Platinum: map[string]float64{"successPercentageOfWorstTransaction": 99, "numberOfCustomErrorRules": 2},
		},
		"HealthRules": {
			Directions: map[string]assess.Direction{
				"numberOfHealthRuleViolationsLastDay": assess.DecreasingIsBetter,
				"numberOfDefaultHealthRulesModified":  assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"numberOfHealthRuleViolationsLastDay": 100, "numberOfDefaultHealthRulesModified": 2},
			Gold:     map[string]float64{"numberOfHealthRuleViolationsLastDay": 50, "numberOfDefaultHealthRulesModified": 5},
			Platinum: map[string]float64{"numberOfHealthRuleViolationsLastDay": 10, "numberOfDefaultHealthRulesModified": 10},
		},
		"DataCollectors": {
			Directions: map[string]assess.Direction{
				"numberOfDataCollectorFieldsConfigured":           assess.IncreasingIsBetter,
				"numberOfDataCollectorFieldsCollectedInSnapshots": assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"numberOfDataCollectorFieldsConfigured": 1},
			Gold:     map[string]float64{"numberOfDataCollectorFieldsConfigured": 2, "numberOfDataCollectorFieldsCollectedInSnapshots": 1},
			Platinum: map[string]float64{"numberOfDataCollectorFieldsConfigured": 5, "numberOfDataCollectorFieldsCollectedInSnapshots": 2},
		},
		"Dashboards": {
			Directions: map[string]assess.Direction{
				"numberOfDashboards":                   assess.IncreasingIsBetter,
				"percentDashboardsModifiedLast6Months": assess.IncreasingIsBetter,
			},
			Silver:   map[string]float64{"numberOfDashboards": 1},
			Gold:     map[string]float64{"numberOfDashboards": 2, "percentDashboardsModifiedLast6Months": 10},
			Platinum: map[string]float64{"numberOfDashboards": 5, "percentDashboardsModifiedLast6Months": 25},
		},
	}
}
